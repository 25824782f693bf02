package spanindex

import (
	"jsema/internal/ast"
	"jsema/internal/source"
)

// Literal is what the index needs from a literal token.
type Literal interface {
	// Kind is ast.KindStringLiteral, ast.KindTextBlock or any other kind,
	// which Build rejects.
	Kind() ast.Kind
	// RawText is the token text including delimiters.
	RawText() string
	// RawSpan is the token's source span including delimiters.
	RawSpan() source.TextSpan
}

type nodeLiteral struct {
	n *ast.Node
}

func (l nodeLiteral) Kind() ast.Kind           { return l.n.Kind }
func (l nodeLiteral) RawText() string          { return l.n.Text }
func (l nodeLiteral) RawSpan() source.TextSpan { return l.n.Span }

// FromNodes adapts syntax nodes of tree. Absent nodes are skipped.
func FromNodes(tree *ast.Tree, ids ...ast.NodeID) []Literal {
	out := make([]Literal, 0, len(ids))
	for _, id := range ids {
		if n := tree.Get(id); n != nil {
			out = append(out, nodeLiteral{n: n})
		}
	}
	return out
}

// Raw is a free-standing literal, handy for tools and tests.
type Raw struct {
	LitKind ast.Kind
	Text    string
	Span    source.TextSpan
}

func (r Raw) Kind() ast.Kind           { return r.LitKind }
func (r Raw) RawText() string          { return r.Text }
func (r Raw) RawSpan() source.TextSpan { return r.Span }
