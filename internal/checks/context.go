package checks

import (
	"jsema/internal/ast"
	"jsema/internal/diag"
	"jsema/internal/source"
	"jsema/internal/symbols"
)

// DefaultTextBlockMaxLines is the S6126 threshold.
const DefaultTextBlockMaxLines = 5

// Options tune rule thresholds.
type Options struct {
	TextBlockMaxLines int
}

// Context is what a rule sees of one compilation unit.
type Context struct {
	Sema     *symbols.Sema
	Tree     *ast.Tree
	Reporter diag.Reporter
	Options  Options
	// Source is used to build fixes; rules skip fixes when it is nil.
	Source *source.File
}

// NewContext binds a unit to a reporter with default options.
func NewContext(sema *symbols.Sema, reporter diag.Reporter, src *source.File) *Context {
	var tree *ast.Tree
	if b := sema.Bindings(); b != nil {
		tree = b.Tree(sema.File())
	}
	return &Context{
		Sema:     sema,
		Tree:     tree,
		Reporter: reporter,
		Options:  Options{TextBlockMaxLines: DefaultTextBlockMaxLines},
		Source:   src,
	}
}

// Loc pins span to the unit's file.
func (c *Context) Loc(span source.TextSpan) source.Location {
	return source.Location{File: c.Sema.File(), Span: span}
}

// NodeLoc returns the location of node id.
func (c *Context) NodeLoc(id ast.NodeID) source.Location {
	if n := c.Tree.Get(id); n != nil {
		return c.Loc(n.Span)
	}
	return c.Loc(source.TextSpan{})
}

// Text returns the source text under span, "" when unavailable or multi-line.
func (c *Context) Text(span source.TextSpan) string {
	if c.Source == nil || !span.SingleLine() {
		return ""
	}
	start, ok1 := c.Source.ByteOffset(span.StartLine, span.StartColumn)
	end, ok2 := c.Source.ByteOffset(span.EndLine, span.EndColumn)
	if !ok1 || !ok2 || end < start {
		return ""
	}
	return string(c.Source.Content[start:end])
}

func (c *Context) nodes(kinds ...ast.Kind) []ast.NodeID {
	if c.Tree == nil {
		return nil
	}
	return c.Tree.Collect(c.Tree.Root, kinds...)
}
