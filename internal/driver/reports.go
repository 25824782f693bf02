package driver

import (
	"jsema/internal/ast"
	"jsema/internal/binding"
	"jsema/internal/source"
	"jsema/internal/spanindex"
	"jsema/internal/symbols"
)

// LiteralChain is a maximal concatenation of string literals and text blocks
// together with its span index.
type LiteralChain struct {
	Span  source.TextSpan
	Parts []ast.NodeID
	Index *spanindex.Index
	Err   error
}

// LiteralChains finds the outermost literal concatenations touching line.
// A lone literal is a chain of one.
func LiteralChains(tree *ast.Tree, line int) []LiteralChain {
	var out []LiteralChain
	tree.Walk(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		if n.Span.StartLine > line || n.Span.EndLine < line {
			return true
		}
		parts := literalLeaves(tree, id)
		if parts == nil {
			return true
		}
		ix, err := spanindex.Build(spanindex.FromNodes(tree, parts...))
		out = append(out, LiteralChain{Span: n.Span, Parts: parts, Index: ix, Err: err})
		return false
	})
	return out
}

func literalLeaves(tree *ast.Tree, id ast.NodeID) []ast.NodeID {
	n := tree.Get(id)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindStringLiteral, ast.KindTextBlock:
		return []ast.NodeID{id}
	case ast.KindBinary:
		if n.Name != "+" {
			return nil
		}
		l := literalLeaves(tree, n.Left)
		r := literalLeaves(tree, n.Right)
		if l == nil || r == nil {
			return nil
		}
		return append(l, r...)
	}
	return nil
}

// MethodOverrides is one declared method and what it overrides, in the
// order the override walk finds them.
type MethodOverrides struct {
	Decl       ast.NodeID
	Span       source.TextSpan
	Owner      string
	Signature  string
	Overridden []OverriddenMethod
}

type OverriddenMethod struct {
	Owner     string
	Signature string
	// Loc is set when the method is declared in analysed source.
	Loc *source.Location
}

// Overrides lists the methods of u in declaration order.
func (r *Result) Overrides(u *Unit) []MethodOverrides {
	if u == nil || u.Sema == nil {
		return nil
	}
	var out []MethodOverrides
	for _, id := range u.Tree.Collect(u.Tree.Root, ast.KindMethod) {
		m := u.Sema.MethodDecl(id)
		if m.IsUnknown() {
			continue
		}
		mo := MethodOverrides{
			Decl:      id,
			Span:      u.Tree.Get(id).Span,
			Owner:     ownerName(m),
			Signature: m.Signature(),
		}
		for _, o := range m.OverriddenSymbols() {
			om := OverriddenMethod{Owner: ownerName(o), Signature: o.Signature()}
			if tree, decl := r.Bindings.Node(o.DeclarationRef()); decl != nil {
				om.Loc = &source.Location{File: tree.File, Span: decl.Span}
			}
			mo.Overridden = append(mo.Overridden, om)
		}
		out = append(out, mo)
	}
	return out
}

func ownerName(m *symbols.MethodSymbol) string {
	if t := m.DeclaringType(); t != nil {
		return t.Type().FullyQualifiedName()
	}
	return ""
}

// TypeOrder returns the source types supertypes-first, the order in which
// override chains are easiest to read. Types on a cycle are left out.
func (r *Result) TypeOrder() []binding.TypeID {
	if r == nil || r.Hierarchy == nil {
		return nil
	}
	return r.Hierarchy.Order
}
