package checks

import (
	"fmt"

	"jsema/internal/ast"
	"jsema/internal/diag"
	"jsema/internal/spanindex"
)

const patternName = "java.util.regex.Pattern"

// stringRegexMethods take a regex as first argument when called on a String.
var stringRegexMethods = map[string]bool{
	"matches":      true,
	"replaceAll":   true,
	"replaceFirst": true,
	"split":        true,
}

// patternRegexMethods are the static Pattern methods taking a regex first.
var patternRegexMethods = map[string]bool{
	"compile": true,
	"matches": true,
}

// EmptyRegexAlternative reports empty alternatives in regexes built from
// string literals and text blocks (S6323). Offsets found in the decoded
// regex are mapped back to source through a span index.
type EmptyRegexAlternative struct{}

func (EmptyRegexAlternative) Code() diag.Code { return diag.EmptyRegexAlternative }

func (r EmptyRegexAlternative) Check(ctx *Context) {
	for _, id := range ctx.nodes(ast.KindMethodCall) {
		arg, ok := ctx.regexArgument(id)
		if !ok {
			continue
		}
		parts := ctx.literalParts(arg, 0)
		if len(parts) == 0 {
			continue
		}
		ix, err := spanindex.Build(spanindex.FromNodes(ctx.Tree, parts...))
		if err != nil {
			diag.ReportError(ctx.Reporter, diag.LiteralError, ctx.NodeLoc(arg), fmt.Sprintf("cannot decode regex literal: %v", err)).Emit()
			continue
		}
		for _, alt := range emptyAlternatives([]rune(ix.Text())) {
			spans := ix.SpansFor(alt.begin, alt.end)
			if len(spans) == 0 {
				continue
			}
			b := diag.ReportWarning(ctx.Reporter, r.Code(), ctx.Loc(spans[0]), "Remove this empty alternative.")
			for _, s := range spans[1:] {
				b.WithNote(ctx.Loc(s), "continued here")
			}
			b.Emit()
		}
	}
}

// regexArgument returns the regex argument of a call to a regex API.
func (c *Context) regexArgument(id ast.NodeID) (ast.NodeID, bool) {
	call := c.Tree.Get(id)
	if len(call.Args) == 0 || !call.Object.IsValid() {
		return ast.NoNodeID, false
	}
	if patternRegexMethods[call.Name] {
		if t := c.Sema.TypeOfName(call.Object); t != nil && t.Is(patternName) {
			return call.Args[0], true
		}
	}
	if stringRegexMethods[call.Name] && c.Sema.TypeOfName(call.Object) == nil {
		if t := c.exprType(call.Object); t != nil && t.Is(stringName) {
			return call.Args[0], true
		}
	}
	return ast.NoNodeID, false
}

// literalParts flattens a concatenation of string literals and text blocks,
// following locals and final fields initialised with one. Any other operand
// yields nil.
func (c *Context) literalParts(id ast.NodeID, depth int) []ast.NodeID {
	n := c.Tree.Get(id)
	if n == nil || depth > 8 {
		return nil
	}
	switch n.Kind {
	case ast.KindStringLiteral, ast.KindTextBlock:
		return []ast.NodeID{id}
	case ast.KindBinary:
		if n.Name != "+" {
			return nil
		}
		l := c.literalParts(n.Left, depth+1)
		r := c.literalParts(n.Right, depth+1)
		if l == nil || r == nil {
			return nil
		}
		return append(l, r...)
	case ast.KindIdentifier:
		decl := c.Tree.Get(c.lookupVar(id, n.Name))
		if decl == nil || !decl.Value.IsValid() {
			return nil
		}
		if decl.Kind == ast.KindField && !decl.Mods.Has(ast.ModFinal) {
			return nil
		}
		if decl.Kind != ast.KindField && decl.Kind != ast.KindLocalVariable {
			return nil
		}
		return c.literalParts(decl.Value, depth+1)
	}
	return nil
}
