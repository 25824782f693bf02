package symbols

import (
	"jsema/internal/ast"
	"jsema/internal/binding"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolUnknown SymbolKind = iota
	SymbolPackage
	SymbolType
	SymbolMethod
	SymbolVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolPackage:
		return "package"
	case SymbolType:
		return "type"
	case SymbolMethod:
		return "method"
	case SymbolVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Symbol is a named declared entity.
type Symbol interface {
	Name() string
	Kind() SymbolKind
	// Owner is the declaring symbol, nil for top-level entities.
	Owner() Symbol
	// Declaration is the syntax node the symbol was declared by, nil when the
	// symbol comes from a library (prelude) type or is unknown.
	Declaration() *ast.Node
	DeclarationRef() binding.DeclRef
	IsUnknown() bool
}

type symbolBase struct {
	sema *Sema
	name string
	kind SymbolKind
	decl binding.DeclRef
}

func (s *symbolBase) Name() string                    { return s.name }
func (s *symbolBase) Kind() SymbolKind                { return s.kind }
func (s *symbolBase) DeclarationRef() binding.DeclRef { return s.decl }
func (s *symbolBase) IsUnknown() bool                 { return s.kind == SymbolUnknown }

func (s *symbolBase) Declaration() *ast.Node {
	if s.sema == nil || s.sema.bindings == nil || !s.decl.IsValid() {
		return nil
	}
	_, n := s.sema.bindings.Node(s.decl)
	return n
}
