package checks

import (
	"fmt"

	"jsema/internal/ast"
	"jsema/internal/diag"
	"jsema/internal/fix"
)

// IsInstanceMethod reports X.class.isInstance(o) (S6202).
type IsInstanceMethod struct{}

func (IsInstanceMethod) Code() diag.Code { return diag.IsInstanceMethod }

func (r IsInstanceMethod) Check(ctx *Context) {
	for _, id := range ctx.nodes(ast.KindMethodCall) {
		call := ctx.Tree.Get(id)
		if call.Name != "isInstance" || len(call.Args) != 1 {
			continue
		}
		lit := ctx.Tree.Get(call.Object)
		if lit == nil || lit.Kind != ast.KindClassLiteral {
			continue
		}
		ref := ctx.Tree.Get(lit.Type)
		if ref == nil {
			continue
		}
		if t := ctx.Sema.TypeOfRef(lit.Type); t.IsPrimitive() || t.IsVoid() {
			continue
		}
		written := ref.Name
		for range ref.Dims {
			written += "[]"
		}
		msg := fmt.Sprintf("Replace this usage of \"%s.class.isInstance()\" with \"instanceof %s\".", written, written)
		b := diag.ReportWarning(ctx.Reporter, r.Code(), ctx.NodeLoc(id), msg)

		old := ctx.Text(call.Span)
		arg := ctx.Tree.Get(call.Args[0])
		if argText := ctx.Text(arg.Span); old != "" && argText != "" {
			if !simpleOperand(arg.Kind) {
				argText = "(" + argText + ")"
			}
			f := fix.ReplaceSpan(`Replace with "instanceof"`, ctx.Loc(call.Span), argText+" instanceof "+written, old)
			b.WithFix(f.Title, f.Edits...)
		}
		b.Emit()
	}
}

func simpleOperand(k ast.Kind) bool {
	switch k {
	case ast.KindIdentifier, ast.KindFieldAccess, ast.KindMethodCall, ast.KindNewObject:
		return true
	}
	return k.IsLiteral()
}
