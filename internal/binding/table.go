package binding

import (
	"fmt"

	"fortio.org/safecast"
)

// Table is the arena-backed Oracle implementation. It is filled by a single
// writer (the binder) and then frozen; a frozen table is read-only and can be
// shared by analyses running on different goroutines.
type Table struct {
	types   []TypeInfo   // index 0 reserved for NoTypeID
	methods []MethodInfo // index 0 reserved for NoMethodID
	byName  map[string]TypeID
	arrays  map[TypeID]TypeID
	frozen  bool
}

var _ Oracle = (*Table)(nil)

// NewTable returns a table seeded with the JDK prelude.
func NewTable() *Table {
	t := newEmptyTable()
	seedPrelude(t)
	return t
}

func newEmptyTable() *Table {
	return &Table{
		types:   make([]TypeInfo, 1, 128),
		methods: make([]MethodInfo, 1, 256),
		byName:  make(map[string]TypeID, 128),
		arrays:  make(map[TypeID]TypeID),
	}
}

// Freeze makes the table read-only. Mutations after Freeze panic.
func (t *Table) Freeze() { t.frozen = true }

// Frozen reports whether Freeze was called.
func (t *Table) Frozen() bool { return t.frozen }

func (t *Table) mustBeWritable() {
	if t.frozen {
		panic("binding: table is frozen")
	}
}

// NewType allocates a type. Declared and primitive types are indexed by
// qualified name; a second declaration with the same name replaces the index
// entry but keeps the earlier TypeID alive.
func (t *Table) NewType(info TypeInfo) TypeID {
	t.mustBeWritable()
	n, err := safecast.Conv[uint32](len(t.types))
	if err != nil {
		panic(fmt.Errorf("types arena overflow: %w", err))
	}
	id := TypeID(n)
	if info.BinaryName == "" {
		info.BinaryName = info.QualifiedName
	}
	t.types = append(t.types, info)
	switch info.Kind {
	case TypeVariable, TypeArray, TypeRecovered:
	default:
		t.byName[info.QualifiedName] = id
	}
	return id
}

// NewTypeVar allocates a type variable whose erasure is bound (Object when absent).
func (t *Table) NewTypeVar(name string, bound TypeID) TypeID {
	if !bound.IsValid() {
		bound = t.Lookup(ObjectName)
	}
	return t.NewType(TypeInfo{Kind: TypeVariable, QualifiedName: name, Erasure: bound})
}

// SetErasure updates the bound of a type variable.
func (t *Table) SetErasure(tv, bound TypeID) {
	t.mustBeWritable()
	if info := t.typeInfo(tv); info != nil && info.Kind == TypeVariable && bound.IsValid() {
		info.Erasure = bound
	}
}

// Recovered allocates a placeholder for a name that could not be resolved.
func (t *Table) Recovered(name string) TypeID {
	return t.NewType(TypeInfo{Kind: TypeRecovered, QualifiedName: name})
}

// ArrayOf returns the (memoized) array type with the given element type.
func (t *Table) ArrayOf(elem TypeID) TypeID {
	if id, ok := t.arrays[elem]; ok {
		return id
	}
	ei := t.Type(elem)
	if ei == nil {
		return NoTypeID
	}
	id := t.NewType(TypeInfo{
		Kind:          TypeArray,
		QualifiedName: ei.QualifiedName + "[]",
		BinaryName:    ei.BinaryName + "[]",
		Elem:          elem,
		Superclass:    t.Lookup(ObjectName),
	})
	t.arrays[elem] = id
	return id
}

// SetSuperclass records the direct superclass of a type.
func (t *Table) SetSuperclass(id, super TypeID) {
	t.mustBeWritable()
	if info := t.typeInfo(id); info != nil {
		info.Superclass = super
	}
}

// AddInterface appends a directly implemented or extended interface.
func (t *Table) AddInterface(id, iface TypeID) {
	t.mustBeWritable()
	if info := t.typeInfo(id); info != nil && iface.IsValid() {
		info.Interfaces = append(info.Interfaces, iface)
	}
}

// NewMethod allocates a method and appends it to its owner's declared methods.
func (t *Table) NewMethod(info MethodInfo) MethodID {
	t.mustBeWritable()
	n, err := safecast.Conv[uint32](len(t.methods))
	if err != nil {
		panic(fmt.Errorf("methods arena overflow: %w", err))
	}
	id := MethodID(n)
	if info.Constructor && !info.Return.IsValid() {
		info.Return = t.Lookup("void")
	}
	t.methods = append(t.methods, info)
	if owner := t.typeInfo(info.Owner); owner != nil {
		owner.Methods = append(owner.Methods, id)
	}
	return id
}

func (t *Table) typeInfo(id TypeID) *TypeInfo {
	if !id.IsValid() || int(id) >= len(t.types) {
		return nil
	}
	return &t.types[id]
}

// Type returns the type data or nil.
func (t *Table) Type(id TypeID) *TypeInfo { return t.typeInfo(id) }

// Method returns the method data or nil.
func (t *Table) Method(id MethodID) *MethodInfo {
	if !id.IsValid() || int(id) >= len(t.methods) {
		return nil
	}
	return &t.methods[id]
}

// Lookup finds a declared or primitive type by qualified name.
func (t *Table) Lookup(qualifiedName string) TypeID {
	return t.byName[qualifiedName]
}

// TypeCount reports the number of allocated types.
func (t *Table) TypeCount() int { return len(t.types) - 1 }

// MethodCount reports the number of allocated methods.
func (t *Table) MethodCount() int { return len(t.methods) - 1 }

// DeclaringType returns the owner of m.
func (t *Table) DeclaringType(m MethodID) TypeID {
	if mi := t.Method(m); mi != nil {
		return mi.Owner
	}
	return NoTypeID
}

// ParameterTypes returns the declared parameter types of m.
func (t *Table) ParameterTypes(m MethodID) []TypeID {
	if mi := t.Method(m); mi != nil {
		return mi.Params
	}
	return nil
}

// ReturnType returns the return type of m (void for constructors).
func (t *Table) ReturnType(m MethodID) TypeID {
	if mi := t.Method(m); mi != nil {
		return mi.Return
	}
	return NoTypeID
}

// ThrownTypes returns the declared exception types of m.
func (t *Table) ThrownTypes(m MethodID) []TypeID {
	if mi := t.Method(m); mi != nil {
		return mi.Thrown
	}
	return nil
}

// Superclass returns the direct superclass, NoTypeID for interfaces,
// java.lang.Object and unresolved types.
func (t *Table) Superclass(id TypeID) TypeID {
	if ti := t.Type(id); ti != nil {
		return ti.Superclass
	}
	return NoTypeID
}

// Interfaces returns the direct superinterfaces in declaration order.
func (t *Table) Interfaces(id TypeID) []TypeID {
	if ti := t.Type(id); ti != nil {
		return ti.Interfaces
	}
	return nil
}

// DeclaredMethods returns the methods declared directly on id.
func (t *Table) DeclaredMethods(id TypeID) []MethodID {
	if ti := t.Type(id); ti != nil {
		return ti.Methods
	}
	return nil
}

// IsInterface reports whether id is an interface or annotation type.
func (t *Table) IsInterface(id TypeID) bool {
	if ti := t.Type(id); ti != nil {
		return ti.Kind == TypeInterface || ti.Kind == TypeAnnotation
	}
	return false
}

// IsResolved reports whether id refers to a real (non-recovered) type.
func (t *Table) IsResolved(id TypeID) bool {
	ti := t.Type(id)
	return ti != nil && ti.Kind != TypeRecovered
}

// Overrides implements the language override test for m against candidate:
// same name and erased parameter types, both instance methods, candidate
// visible from m's owner, and declared on a different type.
func (t *Table) Overrides(m, candidate MethodID) bool {
	mi, ci := t.Method(m), t.Method(candidate)
	if mi == nil || ci == nil || m == candidate {
		return false
	}
	if mi.Constructor || ci.Constructor || mi.Name != ci.Name {
		return false
	}
	if mi.IsStatic() || ci.IsStatic() || ci.IsPrivate() {
		return false
	}
	if mi.Owner == ci.Owner {
		return false
	}
	owner, candOwner := t.Type(mi.Owner), t.Type(ci.Owner)
	if owner == nil || candOwner == nil {
		return false
	}
	if ci.IsPackagePrivate() && !t.IsInterface(ci.Owner) && owner.Package != candOwner.Package {
		return false
	}
	if len(mi.Params) != len(ci.Params) {
		return false
	}
	for i := range mi.Params {
		if ErasedName(t, mi.Params[i]) != ErasedName(t, ci.Params[i]) {
			return false
		}
	}
	return true
}
