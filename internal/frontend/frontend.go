// Package frontend turns Java source files into ast trees using the
// tree-sitter Java grammar. Builds without cgo get a stub that reports
// ErrNoCGO.
package frontend

import (
	"errors"

	"jsema/internal/ast"
	"jsema/internal/source"
)

// ErrNoCGO is returned by Parse when the binary was built without cgo.
var ErrNoCGO = errors.New("java frontend requires cgo (tree-sitter)")

// SyntaxError is a region the grammar could not parse or had to invent.
type SyntaxError struct {
	Span    source.TextSpan
	Missing bool // token inserted by error recovery
	Text    string
}

func (e SyntaxError) Message() string {
	if e.Missing {
		return "missing " + e.Text
	}
	if e.Text == "" {
		return "unexpected input"
	}
	return "unexpected " + quoteShort(e.Text)
}

// Result is one parsed compilation unit. A tree is produced even when
// Errors is non-empty.
type Result struct {
	Tree   *ast.Tree
	Errors []SyntaxError
}

func quoteShort(s string) string {
	const limit = 24
	r := []rune(s)
	if len(r) > limit {
		s = string(r[:limit]) + "..."
	}
	return "\"" + s + "\""
}
