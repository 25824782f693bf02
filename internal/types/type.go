package types

import (
	"jsema/internal/binding"
)

// UnknownName is the fully-qualified name of the unknown sentinel.
const UnknownName = "!unknown!"

// Type is a stable type value. Two Types denote the same entity iff their
// fully-qualified names match; a Registry hands out one *Type per name, so
// pointer equality holds within one registry.
type Type struct {
	fqn    string
	binary string
	kind   Kind
	id     binding.TypeID
	elem   *Type
	reg    *Registry
}

// FullyQualifiedName returns e.g. "java.util.Map.Entry" or "int[]".
func (t *Type) FullyQualifiedName() string { return t.fqn }

// BinaryName returns e.g. "java.util.Map$Entry".
func (t *Type) BinaryName() string { return t.binary }

// Name returns the simple name.
func (t *Type) Name() string {
	for i := len(t.fqn) - 1; i >= 0; i-- {
		if t.fqn[i] == '.' {
			return t.fqn[i+1:]
		}
	}
	return t.fqn
}

func (t *Type) Kind() Kind         { return t.kind }
func (t *Type) IsUnknown() bool    { return t.kind == KindUnknown }
func (t *Type) IsVoid() bool       { return t.kind == KindVoid }
func (t *Type) IsPrimitive() bool  { return t.kind == KindPrimitive }
func (t *Type) IsArray() bool      { return t.kind == KindArray }
func (t *Type) ID() binding.TypeID { return t.id }
func (t *Type) String() string     { return t.fqn }
func (t *Type) Is(fqn string) bool { return t.fqn == fqn }

// Elem returns the element type of an array, nil otherwise.
func (t *Type) Elem() *Type { return t.elem }

// Equal compares by fully-qualified name.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.fqn == other.fqn
}

// Superclass returns the direct superclass or nil.
func (t *Type) Superclass() *Type {
	if t.reg == nil || t.kind == KindUnknown {
		return nil
	}
	sup := t.reg.oracle.Superclass(t.id)
	if !sup.IsValid() {
		return nil
	}
	return t.reg.Type(sup)
}

// Interfaces returns the direct superinterfaces in declaration order.
func (t *Type) Interfaces() []*Type {
	if t.reg == nil || t.kind == KindUnknown {
		return nil
	}
	return t.reg.Types(t.reg.oracle.Interfaces(t.id))
}
