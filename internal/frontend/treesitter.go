//go:build cgo

package frontend

import (
	"context"
	"fmt"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"jsema/internal/ast"
	"jsema/internal/source"
)

// Available reports whether Parse can work in this build.
func Available() bool { return true }

// Parse parses one Java file. tree-sitter parsers are not shareable, so each
// call owns its own.
func Parse(ctx context.Context, file *source.File) (*Result, error) {
	if file == nil {
		return nil, fmt.Errorf("parse: nil file")
	}
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(java.GetLanguage())

	tsTree, err := p.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	defer tsTree.Close()

	root := tsTree.RootNode()
	c := &converter{
		file: file,
		tree: ast.NewTree(file.ID, file.Path, capHint(file)),
	}
	c.tree.Root = c.unit(root)
	res := &Result{Tree: c.tree}
	if root.HasError() {
		res.Errors = c.syntaxErrors(root, nil)
	}
	return res, nil
}

// capHint guesses the node count from the file size.
func capHint(file *source.File) uint {
	n, err := safecast.Conv[uint](len(file.Content) / 8)
	if err != nil || n == 0 {
		return 0
	}
	return n
}

func (c *converter) syntaxErrors(n *sitter.Node, out []SyntaxError) []SyntaxError {
	switch {
	case n.IsMissing():
		return append(out, SyntaxError{Span: c.span(n), Missing: true, Text: n.Type()})
	case n.IsError():
		return append(out, SyntaxError{Span: c.span(n), Text: strings.TrimSpace(c.text(n))})
	case !n.HasError():
		return out
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		out = c.syntaxErrors(n.Child(i), out)
	}
	return out
}

func toInt(v uint32) int {
	n, err := safecast.Conv[int](v)
	if err != nil {
		panic(fmt.Errorf("position overflow: %w", err))
	}
	return n
}
