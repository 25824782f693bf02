package symbols

import (
	"jsema/internal/ast"
	"jsema/internal/binding"
	"jsema/internal/source"
	"jsema/internal/types"
)

// Stats counts the work a Sema has done.
type Stats struct {
	MethodSymbols int
	TypeSymbols   int
	// OverrideWalks is the number of override resolutions performed.
	OverrideWalks int
	// TypesExpanded counts ancestor types visited across all walks.
	TypesExpanded int
}

// Sema is the semantic model of one compilation unit. It reads the shared,
// immutable oracle and owns every symbol it hands out. A Sema must not be
// used from more than one goroutine.
type Sema struct {
	oracle   binding.Oracle
	bindings *binding.Bindings
	file     source.FileID
	types    *types.Registry

	methods map[binding.MethodID]*MethodSymbol
	typeSym map[binding.TypeID]*TypeSymbol
	unknown *MethodSymbol
	stats   Stats
}

// New creates the model for file. bindings may be nil when only oracle
// handles are queried.
func New(oracle binding.Oracle, bindings *binding.Bindings, file source.FileID) *Sema {
	s := &Sema{
		oracle:   oracle,
		bindings: bindings,
		file:     file,
		types:    types.NewRegistry(oracle),
		methods:  make(map[binding.MethodID]*MethodSymbol, 64),
		typeSym:  make(map[binding.TypeID]*TypeSymbol, 16),
	}
	s.unknown = &MethodSymbol{symbolBase: symbolBase{sema: s, kind: SymbolUnknown}}
	return s
}

// Oracle returns the binding oracle.
func (s *Sema) Oracle() binding.Oracle { return s.oracle }

// Bindings returns the node bindings, possibly nil.
func (s *Sema) Bindings() *binding.Bindings { return s.bindings }

// File returns the compilation unit this model belongs to.
func (s *Sema) File() source.FileID { return s.file }

// Types returns the per-pass type registry.
func (s *Sema) Types() *types.Registry { return s.types }

// Stats returns a snapshot of the work counters.
func (s *Sema) Stats() Stats { return s.stats }

// Method returns the symbol for id, creating it on first access. An absent
// binding yields the shared unknown method symbol.
func (s *Sema) Method(id binding.MethodID) *MethodSymbol {
	if sym, ok := s.methods[id]; ok {
		return sym
	}
	info := s.oracle.Method(id)
	if info == nil {
		return s.unknown
	}
	sym := &MethodSymbol{
		symbolBase: symbolBase{
			sema: s,
			name: info.Name,
			kind: SymbolMethod,
			decl: info.Decl,
		},
		id:          id,
		owner:       info.Owner,
		constructor: info.Constructor,
		mods:        info.Mods,
		signature:   binding.Signature(s.oracle, id),
	}
	s.methods[id] = sym
	s.stats.MethodSymbols++
	return sym
}

// MethodDecl returns the symbol for a method or constructor node of this unit.
func (s *Sema) MethodDecl(node ast.NodeID) *MethodSymbol {
	if s.bindings == nil {
		return s.unknown
	}
	return s.Method(s.bindings.MethodOf(s.file, node))
}

// TypeSymbol returns the symbol for a declared or library type, nil when the
// handle is absent or unresolved.
func (s *Sema) TypeSymbol(id binding.TypeID) *TypeSymbol {
	if sym, ok := s.typeSym[id]; ok {
		return sym
	}
	t := s.types.Type(id)
	if t.IsUnknown() {
		return nil
	}
	info := s.oracle.Type(id)
	sym := &TypeSymbol{
		symbolBase: symbolBase{
			sema: s,
			name: t.Name(),
			kind: SymbolType,
			decl: info.Decl,
		},
		id:  id,
		typ: t,
	}
	s.typeSym[id] = sym
	s.stats.TypeSymbols++
	return sym
}

// TypeDecl returns the symbol for a type declaration node of this unit.
func (s *Sema) TypeDecl(node ast.NodeID) *TypeSymbol {
	if s.bindings == nil {
		return nil
	}
	return s.TypeSymbol(s.bindings.TypeOf(s.file, node))
}

// TypeOfRef returns the type a type-reference node denotes. `var` and
// unresolved names yield the unknown type.
func (s *Sema) TypeOfRef(node ast.NodeID) *types.Type {
	if s.bindings == nil {
		return s.types.Unknown()
	}
	return s.types.Type(s.bindings.ResolveTypeRef(s.file, node))
}

// TypeOfName returns the type an expression name such as Pattern in
// Pattern.compile denotes, or nil when it is not a type name.
func (s *Sema) TypeOfName(node ast.NodeID) *types.Type {
	if s.bindings == nil {
		return nil
	}
	id := s.bindings.TypeName(s.file, node)
	if !id.IsValid() {
		return nil
	}
	return s.types.Type(id)
}
