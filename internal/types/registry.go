package types

import (
	"golang.org/x/text/unicode/norm"

	"jsema/internal/binding"
)

// Registry converts binding handles into *Type values. It belongs to one
// analysis pass and is not safe for concurrent use.
type Registry struct {
	oracle  binding.Oracle
	byID    map[binding.TypeID]*Type
	byName  map[string]*Type
	unknown *Type
	void    *Type
}

// NewRegistry creates a registry reading from oracle.
func NewRegistry(oracle binding.Oracle) *Registry {
	r := &Registry{
		oracle: oracle,
		byID:   make(map[binding.TypeID]*Type, 64),
		byName: make(map[string]*Type, 64),
	}
	r.unknown = &Type{fqn: UnknownName, binary: UnknownName, kind: KindUnknown}
	r.byName[UnknownName] = r.unknown
	if id := oracle.Lookup("void"); id.IsValid() {
		r.void = r.Type(id)
	} else {
		r.void = r.intern(&Type{fqn: "void", binary: "void", kind: KindVoid, reg: r})
	}
	return r
}

// Unknown returns the sentinel for unresolvable types.
func (r *Registry) Unknown() *Type { return r.unknown }

// Void returns the void type.
func (r *Registry) Void() *Type { return r.void }

// Len reports the number of distinct types handed out.
func (r *Registry) Len() int { return len(r.byName) }

// Lookup finds a type by fully-qualified name, nil if none was handed out
// and the oracle does not know the name.
func (r *Registry) Lookup(fqn string) *Type {
	if t := r.byName[norm.NFC.String(fqn)]; t != nil {
		return t
	}
	if id := r.oracle.Lookup(fqn); id.IsValid() {
		return r.Type(id)
	}
	return nil
}

// Type converts a handle. Invalid and recovered handles map to Unknown.
func (r *Registry) Type(id binding.TypeID) *Type {
	if t, ok := r.byID[id]; ok {
		return t
	}
	info := r.oracle.Type(id)
	if info == nil {
		return r.unknown
	}
	t := &Type{id: id, reg: r, fqn: info.QualifiedName, binary: info.BinaryName}
	switch info.Kind {
	case binding.TypeClass:
		t.kind = KindClass
	case binding.TypeInterface:
		t.kind = KindInterface
	case binding.TypeEnum:
		t.kind = KindEnum
	case binding.TypeRecord:
		t.kind = KindRecord
	case binding.TypeAnnotation:
		t.kind = KindAnnotation
	case binding.TypePrimitive:
		t.kind = KindPrimitive
	case binding.TypeVoid:
		t.kind = KindVoid
	case binding.TypeArray:
		t.kind = KindArray
		t.elem = r.Type(info.Elem)
		if t.elem.IsUnknown() {
			r.byID[id] = r.unknown
			return r.unknown
		}
	case binding.TypeVariable:
		t.kind = KindTypeVar
	default:
		r.byID[id] = r.unknown
		return r.unknown
	}
	t = r.intern(t)
	r.byID[id] = t
	return t
}

// intern returns the existing Type with the same normalised name, if any.
func (r *Registry) intern(t *Type) *Type {
	t.fqn = norm.NFC.String(t.fqn)
	if prev, ok := r.byName[t.fqn]; ok {
		return prev
	}
	r.byName[t.fqn] = t
	return t
}

// Types converts an ordered slice of handles.
func (r *Registry) Types(ids []binding.TypeID) []*Type {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Type, len(ids))
	for i, id := range ids {
		out[i] = r.Type(id)
	}
	return out
}
