package checks

import (
	"jsema/internal/ast"
	"jsema/internal/diag"
	"jsema/internal/fix"
)

// VarCanBeUsed reports locals whose declared type repeats the type of the
// initializer (S6212).
type VarCanBeUsed struct{}

func (VarCanBeUsed) Code() diag.Code { return diag.UseVarForLocal }

func (r VarCanBeUsed) Check(ctx *Context) {
	for _, id := range ctx.nodes(ast.KindLocalVariable) {
		n := ctx.Tree.Get(id)
		if !n.Value.IsValid() || n.Dims > 0 {
			continue
		}
		typeNode := ctx.Tree.Get(n.Type)
		if typeNode == nil || typeNode.Name == "var" {
			continue
		}
		declared := known(ctx.Sema.TypeOfRef(n.Type))
		initial := ctx.exprType(n.Value)
		if declared == nil || initial == nil || !declared.Equal(initial) {
			continue
		}
		b := diag.ReportWarning(ctx.Reporter, r.Code(), ctx.NodeLoc(id), `Declare this local variable with "var" instead.`)
		if old := ctx.Text(typeNode.Span); old != "" {
			f := fix.ReplaceSpan(`Replace the type with "var"`, ctx.Loc(typeNode.Span), "var", old)
			b.WithFix(f.Title, f.Edits...)
		}
		b.Emit()
	}
}
