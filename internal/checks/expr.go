package checks

import (
	"strings"

	"jsema/internal/ast"
	"jsema/internal/symbols"
	"jsema/internal/types"
)

const stringName = "java.lang.String"

// exprType is a shallow typing of expressions, enough for the rules:
// literals, instance creation, string concatenation, names of locals,
// parameters and fields with explicit types, and calls whose target can be
// found by name and arity. nil means unknown.
func (c *Context) exprType(id ast.NodeID) *types.Type {
	n := c.Tree.Get(id)
	if n == nil {
		return nil
	}
	reg := c.Sema.Types()
	switch n.Kind {
	case ast.KindStringLiteral, ast.KindTextBlock:
		return reg.Lookup(stringName)
	case ast.KindCharLiteral:
		return reg.Lookup("char")
	case ast.KindBoolLiteral:
		return reg.Lookup("boolean")
	case ast.KindNumberLiteral:
		return reg.Lookup(numberType(n.Text))
	case ast.KindNewObject:
		if len(n.Members) > 0 {
			return nil // anonymous class
		}
		return known(c.Sema.TypeOfRef(n.Type))
	case ast.KindBinary:
		if n.Name != "+" {
			return nil
		}
		l, r := c.exprType(n.Left), c.exprType(n.Right)
		if (l != nil && l.Is(stringName)) || (r != nil && r.Is(stringName)) {
			return reg.Lookup(stringName)
		}
		return nil
	case ast.KindIdentifier:
		decl := c.lookupVar(id, n.Name)
		if d := c.Tree.Get(decl); d != nil && d.Type.IsValid() {
			return known(c.Sema.TypeOfRef(d.Type))
		}
		return nil
	case ast.KindMethodCall:
		if m := c.resolveCall(id); m != nil {
			ret := m.ReturnType()
			if ret.IsVoid() || ret.Kind() == types.KindTypeVar {
				return nil
			}
			return known(ret)
		}
		return nil
	}
	return nil
}

func known(t *types.Type) *types.Type {
	if t == nil || t.IsUnknown() {
		return nil
	}
	return t
}

func numberType(text string) string {
	t := strings.ToLower(strings.ReplaceAll(text, "_", ""))
	switch {
	case strings.HasSuffix(t, "l"):
		return "long"
	case strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0b"):
		if strings.Contains(t, "p") {
			return "double"
		}
		return "int"
	case strings.HasSuffix(t, "f"):
		return "float"
	case strings.HasSuffix(t, "d"), strings.ContainsAny(t, ".e"):
		return "double"
	}
	return "int"
}

// lookupVar finds the declaration of a simple name visible at id: earlier
// locals of enclosing blocks, parameters of enclosing methods and lambdas,
// fields and record components of enclosing types.
func (c *Context) lookupVar(id ast.NodeID, name string) ast.NodeID {
	t := c.Tree
	child := id
	for cur := t.Get(id); cur != nil && cur.Parent.IsValid(); {
		pid := cur.Parent
		p := t.Get(pid)
		switch p.Kind {
		case ast.KindBlock, ast.KindOther:
			found := ast.NoNodeID
			for _, s := range p.Children {
				if s == child {
					break
				}
				if sn := t.Get(s); sn != nil && sn.Kind == ast.KindLocalVariable && sn.Name == name {
					found = s
				}
			}
			if found.IsValid() {
				return found
			}
		case ast.KindMethod, ast.KindConstructor, ast.KindLambda:
			for _, prm := range p.Params {
				if pn := t.Get(prm); pn != nil && pn.Name == name {
					return prm
				}
			}
		case ast.KindClass, ast.KindInterface, ast.KindEnum, ast.KindRecord, ast.KindAnnotationType, ast.KindNewObject:
			for _, m := range p.Members {
				if mn := t.Get(m); mn != nil && mn.Kind == ast.KindField && mn.Name == name {
					return m
				}
			}
			if p.Kind == ast.KindRecord {
				for _, prm := range p.Params {
					if pn := t.Get(prm); pn != nil && pn.Name == name {
						return prm
					}
				}
			}
		}
		child, cur = pid, p
	}
	return ast.NoNodeID
}

// resolveCall finds the method a call targets by name and arity, searching
// the receiver type and its ancestors. Overloads with equal arity resolve to
// the first declared.
func (c *Context) resolveCall(id ast.NodeID) *symbols.MethodSymbol {
	n := c.Tree.Get(id)
	if n == nil || n.Kind != ast.KindMethodCall {
		return nil
	}
	var owner *symbols.TypeSymbol
	switch {
	case !n.Object.IsValid():
		owner = c.enclosingTypeSymbol(id)
	default:
		t := c.Sema.TypeOfName(n.Object)
		if t == nil {
			t = c.exprType(n.Object)
		}
		if t != nil {
			owner = c.Sema.TypeSymbol(t.ID())
		}
	}
	if owner == nil {
		return nil
	}
	return findMethod(owner, n.Name, len(n.Args))
}

func (c *Context) enclosingTypeSymbol(id ast.NodeID) *symbols.TypeSymbol {
	decl := c.Tree.Ancestor(id, ast.KindClass, ast.KindInterface, ast.KindEnum, ast.KindRecord, ast.KindAnnotationType, ast.KindNewObject)
	for decl.IsValid() {
		if sym := c.Sema.TypeDecl(decl); sym != nil {
			return sym
		}
		// a plain `new X()` is not a type body
		decl = c.Tree.Ancestor(decl, ast.KindClass, ast.KindInterface, ast.KindEnum, ast.KindRecord, ast.KindAnnotationType, ast.KindNewObject)
	}
	return nil
}

func findMethod(owner *symbols.TypeSymbol, name string, arity int) *symbols.MethodSymbol {
	seen := make(map[*symbols.TypeSymbol]bool)
	queue := []*symbols.TypeSymbol{owner}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if seen[t] {
			continue
		}
		seen[t] = true
		for _, m := range t.Methods() {
			if m.Name() == name && !m.IsConstructor() && len(m.ParameterTypes()) == arity {
				return m
			}
		}
		if sup := t.SuperClass(); sup != nil {
			queue = append(queue, sup)
		}
		queue = append(queue, t.Interfaces()...)
	}
	return nil
}
