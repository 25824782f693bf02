package symbols

import (
	"strings"

	"jsema/internal/binding"
	"jsema/internal/types"
)

// TypeSymbol is the semantic view of a class-like, primitive or array type.
type TypeSymbol struct {
	symbolBase
	id  binding.TypeID
	typ *types.Type
}

var _ Symbol = (*TypeSymbol)(nil)

func (t *TypeSymbol) ID() binding.TypeID { return t.id }

// Type returns the registry type.
func (t *TypeSymbol) Type() *types.Type { return t.typ }

// Owner returns the enclosing type for nested, local and anonymous types.
func (t *TypeSymbol) Owner() Symbol {
	if !strings.Contains(t.typ.BinaryName(), "$") {
		return nil
	}
	fqn := t.typ.FullyQualifiedName()
	i := strings.LastIndexByte(fqn, '.')
	if i < 0 {
		return nil
	}
	if outer := t.sema.TypeSymbol(t.sema.oracle.Lookup(fqn[:i])); outer != nil {
		return outer
	}
	return nil
}

// SuperClass returns the direct superclass symbol, nil if absent or unresolved.
func (t *TypeSymbol) SuperClass() *TypeSymbol {
	sup := t.sema.oracle.Superclass(t.id)
	if !sup.IsValid() {
		return nil
	}
	return t.sema.TypeSymbol(sup)
}

// Interfaces returns the resolved direct superinterfaces in declaration order.
func (t *TypeSymbol) Interfaces() []*TypeSymbol {
	ids := t.sema.oracle.Interfaces(t.id)
	out := make([]*TypeSymbol, 0, len(ids))
	for _, id := range ids {
		if sym := t.sema.TypeSymbol(id); sym != nil {
			out = append(out, sym)
		}
	}
	return out
}

// Methods returns the declared methods in declaration order.
func (t *TypeSymbol) Methods() []*MethodSymbol {
	ids := t.sema.oracle.DeclaredMethods(t.id)
	out := make([]*MethodSymbol, len(ids))
	for i, id := range ids {
		out[i] = t.sema.Method(id)
	}
	return out
}

// IsInterface reports whether the type is an interface or annotation type.
func (t *TypeSymbol) IsInterface() bool { return t.sema.oracle.IsInterface(t.id) }
