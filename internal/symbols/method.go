package symbols

import (
	"jsema/internal/ast"
	"jsema/internal/binding"
	"jsema/internal/types"
)

// MethodSymbol is the semantic view of a method or constructor. The four
// derived facts are computed on first access and cached.
type MethodSymbol struct {
	symbolBase
	id          binding.MethodID
	owner       binding.TypeID
	constructor bool
	mods        ast.Modifiers
	signature   string

	params     lazy[[]*types.Type]
	ret        lazy[*types.Type]
	thrown     lazy[[]*types.Type]
	overridden lazy[[]*MethodSymbol]
}

var _ Symbol = (*MethodSymbol)(nil)

// ID returns the underlying binding handle.
func (m *MethodSymbol) ID() binding.MethodID { return m.id }

// Owner returns the declaring type symbol.
func (m *MethodSymbol) Owner() Symbol {
	if dt := m.DeclaringType(); dt != nil {
		return dt
	}
	return nil
}

// DeclaringType returns the type the method is declared on, nil if unknown.
func (m *MethodSymbol) DeclaringType() *TypeSymbol {
	if m.IsUnknown() {
		return nil
	}
	return m.sema.TypeSymbol(m.owner)
}

func (m *MethodSymbol) IsConstructor() bool { return m.constructor }

func (m *MethodSymbol) IsStatic() bool { return m.mods.Has(ast.ModStatic) }

func (m *MethodSymbol) IsPrivate() bool { return m.mods.Has(ast.ModPrivate) }

func (m *MethodSymbol) IsAbstract() bool { return m.mods.Has(ast.ModAbstract) }

// Signature is "owner#name(descriptor)ret". It never triggers override
// resolution.
func (m *MethodSymbol) Signature() string { return m.signature }

// ParameterTypes returns the parameter types in declaration order.
func (m *MethodSymbol) ParameterTypes() []*types.Type {
	return m.params.get(func() []*types.Type {
		if m.IsUnknown() {
			return nil
		}
		return m.sema.types.Types(m.sema.oracle.ParameterTypes(m.id))
	})
}

// ReturnType returns the return type; void for constructors, the unknown
// type when it cannot be resolved.
func (m *MethodSymbol) ReturnType() *types.Type {
	return m.ret.get(func() *types.Type {
		if m.IsUnknown() {
			return m.sema.types.Unknown()
		}
		if m.constructor {
			return m.sema.types.Void()
		}
		return m.sema.types.Type(m.sema.oracle.ReturnType(m.id))
	})
}

// ThrownTypes returns the declared exception types in declaration order.
func (m *MethodSymbol) ThrownTypes() []*types.Type {
	return m.thrown.get(func() []*types.Type {
		if m.IsUnknown() {
			return nil
		}
		return m.sema.types.Types(m.sema.oracle.ThrownTypes(m.id))
	})
}

// OverriddenSymbols returns every ancestor method this one overrides, in
// discovery order and without duplicates.
func (m *MethodSymbol) OverriddenSymbols() []*MethodSymbol {
	return m.overridden.get(func() []*MethodSymbol {
		if m.IsUnknown() {
			return nil
		}
		return m.sema.findOverrides(m.id)
	})
}

// OverriddenSymbol returns the first overridden method or nil.
func (m *MethodSymbol) OverriddenSymbol() *MethodSymbol {
	if all := m.OverriddenSymbols(); len(all) > 0 {
		return all[0]
	}
	return nil
}
