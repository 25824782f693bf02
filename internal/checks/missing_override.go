package checks

import (
	"jsema/internal/ast"
	"jsema/internal/diag"
	"jsema/internal/fix"
	"jsema/internal/source"
)

// MissingOverride reports overriding methods without @Override (S1161).
type MissingOverride struct{}

func (MissingOverride) Code() diag.Code { return diag.MissingOverride }

func (r MissingOverride) Check(ctx *Context) {
	for _, id := range ctx.nodes(ast.KindMethod) {
		if ctx.Tree.HasAnnotation(id, "Override") {
			continue
		}
		m := ctx.Sema.MethodDecl(id)
		if m.IsUnknown() || m.IsConstructor() || m.IsStatic() || m.IsPrivate() {
			continue
		}
		overridden := m.OverriddenSymbol()
		if overridden == nil {
			continue
		}
		loc := ctx.NodeLoc(id)
		b := diag.ReportWarning(ctx.Reporter, r.Code(), loc, `Add the "@Override" annotation above this method signature`)
		if tree, decl := ctx.Sema.Bindings().Node(overridden.DeclarationRef()); decl != nil {
			b.WithNote(source.Location{File: tree.File, Span: decl.Span}, "overrides "+overridden.Signature())
		}
		f := fix.InsertText(`Add "@Override"`, loc, "@Override ")
		b.WithFix(f.Title, f.Edits...)
		b.Emit()
	}
}
