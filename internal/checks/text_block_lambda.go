package checks

import (
	"jsema/internal/ast"
	"jsema/internal/diag"
	"jsema/internal/literal"
)

// TextBlockInLambda reports long text blocks inside lambda bodies (S6126).
type TextBlockInLambda struct{}

func (TextBlockInLambda) Code() diag.Code { return diag.TextBlockInLambda }

func (r TextBlockInLambda) Check(ctx *Context) {
	limit := ctx.Options.TextBlockMaxLines
	if limit <= 0 {
		limit = DefaultTextBlockMaxLines
	}
	for _, id := range ctx.nodes(ast.KindTextBlock) {
		if !ctx.Tree.Ancestor(id, ast.KindLambda).IsValid() {
			continue
		}
		n := ctx.Tree.Get(id)
		if literal.LineCount(n.Text) <= limit {
			continue
		}
		diag.ReportWarning(ctx.Reporter, r.Code(), ctx.NodeLoc(id),
			"Move this text block out of the lambda body and refactor it to a local variable or a static final field.").Emit()
	}
}
