package testkit

import (
	"jsema/internal/ast"
	"jsema/internal/source"
)

// Java assembles ast trees by hand, in the shape the frontend produces, so
// that binding, symbol and rule tests do not need the cgo parser.
// Children are created first and passed to their parents.
type Java struct {
	Tree *ast.Tree
	line int
}

// NewJava starts a tree for a compilation unit.
func NewJava(file source.FileID, path string) *Java {
	return &Java{Tree: ast.NewTree(file, path, 0), line: 1}
}

// nextSpan gives structural nodes distinct, increasing positions.
func (j *Java) nextSpan() source.TextSpan {
	j.line++
	return source.LineSpan(j.line, 0, 1)
}

func (j *Java) add(n ast.Node) ast.NodeID {
	if n.Span.IsZero() {
		n.Span = j.nextSpan()
	}
	return j.Tree.Add(n)
}

// Node returns the node for id.
func (j *Java) Node(id ast.NodeID) *ast.Node { return j.Tree.Get(id) }

// Ref is a type reference with optional type arguments.
func (j *Java) Ref(name string, args ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindTypeRef, Name: name, Args: args})
}

// ArrayRef is a type reference with dims array dimensions.
func (j *Java) ArrayRef(name string, dims int) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindTypeRef, Name: name, Dims: dims})
}

// Param declares a method parameter or record component.
func (j *Java) Param(name string, typ ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindParameter, Name: name, Type: typ})
}

// TypeParam declares a type variable with optional bounds.
func (j *Java) TypeParam(name string, bounds ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindTypeParam, Name: name, Interfaces: bounds})
}

// Block is a statement block.
func (j *Java) Block(stmts ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindBlock, Children: stmts})
}

// Method declares a method with an empty body.
func (j *Java) Method(mods ast.Modifiers, name string, ret ast.NodeID, params ...ast.NodeID) ast.NodeID {
	return j.MethodWithBody(mods, name, ret, j.Block(), params...)
}

// MethodWithBody declares a method with the given body block.
func (j *Java) MethodWithBody(mods ast.Modifiers, name string, ret, body ast.NodeID, params ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindMethod, Name: name, Mods: mods, Type: ret, Params: params, Body: body})
}

// Abstract declares a method without a body.
func (j *Java) Abstract(mods ast.Modifiers, name string, ret ast.NodeID, params ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindMethod, Name: name, Mods: mods, Type: ret, Params: params})
}

// Ctor declares a constructor.
func (j *Java) Ctor(mods ast.Modifiers, name string, params ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindConstructor, Name: name, Mods: mods, Params: params, Body: j.Block()})
}

// Generic attaches type parameters to a method or type declaration.
func (j *Java) Generic(decl ast.NodeID, params ...ast.NodeID) ast.NodeID {
	j.Node(decl).TypeParams = append(j.Node(decl).TypeParams, params...)
	j.Tree.Adopt(decl, params...)
	return decl
}

// Throws attaches thrown types to a method.
func (j *Java) Throws(decl ast.NodeID, types ...ast.NodeID) ast.NodeID {
	j.Node(decl).Throws = append(j.Node(decl).Throws, types...)
	j.Tree.Adopt(decl, types...)
	return decl
}

// Annotate attaches marker annotations to a declaration.
func (j *Java) Annotate(decl ast.NodeID, names ...string) ast.NodeID {
	for _, name := range names {
		a := j.add(ast.Node{Kind: ast.KindAnnotation, Name: name})
		j.Node(decl).Annotations = append(j.Node(decl).Annotations, a)
		j.Tree.Adopt(decl, a)
	}
	return decl
}

// Type declares a class-like type. super may be ast.NoNodeID.
func (j *Java) Type(kind ast.Kind, mods ast.Modifiers, name string, super ast.NodeID, ifaces []ast.NodeID, members ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: kind, Name: name, Mods: mods, Superclass: super, Interfaces: ifaces, Members: members})
}

// Class declares a class.
func (j *Java) Class(name string, super ast.NodeID, ifaces []ast.NodeID, members ...ast.NodeID) ast.NodeID {
	return j.Type(ast.KindClass, ast.ModPublic, name, super, ifaces, members...)
}

// Interface declares an interface; ifaces are its superinterfaces.
func (j *Java) Interface(name string, ifaces []ast.NodeID, members ...ast.NodeID) ast.NodeID {
	return j.Type(ast.KindInterface, ast.ModPublic, name, ast.NoNodeID, ifaces, members...)
}

// Record declares a record with the given components.
func (j *Java) Record(name string, components []ast.NodeID, members ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindRecord, Name: name, Mods: ast.ModPublic, Params: components, Members: members})
}

// Import declares a (possibly on-demand or static) import.
func (j *Java) Import(name string, static bool) ast.NodeID {
	var mods ast.Modifiers
	if static {
		mods = ast.ModStatic
	}
	return j.add(ast.Node{Kind: ast.KindImport, Name: name, Mods: mods})
}

// Unit finishes the compilation unit and returns the tree.
func (j *Java) Unit(pkg string, imports []string, types ...ast.NodeID) *ast.Tree {
	var imps []ast.NodeID
	for _, name := range imports {
		imps = append(imps, j.Import(name, false))
	}
	j.Tree.Root = j.add(ast.Node{
		Kind:     ast.KindCompilationUnit,
		Span:     source.NewTextSpan(1, 0, j.line+1, 0),
		Name:     pkg,
		Children: imps,
		Members:  types,
	})
	return j.Tree
}

// Ident is a simple name in expression position.
func (j *Java) Ident(name string) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindIdentifier, Name: name})
}

// Field is obj.name.
func (j *Java) Field(obj ast.NodeID, name string) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindFieldAccess, Name: name, Object: obj})
}

// Call is obj.name(args...); obj may be ast.NoNodeID.
func (j *Java) Call(obj ast.NodeID, name string, args ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindMethodCall, Name: name, Object: obj, Args: args})
}

// New is `new typ(args...)`.
func (j *Java) New(typ ast.NodeID, args ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindNewObject, Type: typ, Args: args})
}

// Anonymous is `new typ() { members }`.
func (j *Java) Anonymous(typ ast.NodeID, members ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindNewObject, Type: typ, Members: members})
}

// ClassLit is typ.class.
func (j *Java) ClassLit(typ ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindClassLiteral, Type: typ})
}

// Local declares a local variable; value may be ast.NoNodeID.
func (j *Java) Local(typ ast.NodeID, name string, value ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindLocalVariable, Name: name, Type: typ, Value: value})
}

// Lambda is (params) -> body.
func (j *Java) Lambda(body ast.NodeID, params ...ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindLambda, Params: params, Body: body})
}

// Binary is left op right.
func (j *Java) Binary(op string, left, right ast.NodeID) ast.NodeID {
	return j.add(ast.Node{Kind: ast.KindBinary, Name: op, Left: left, Right: right})
}

// Str is a string literal whose raw text (with quotes) starts at line:col.
func (j *Java) Str(raw string, line, col int) ast.NodeID {
	return j.add(ast.Node{
		Kind: ast.KindStringLiteral,
		Text: raw,
		Span: source.LineSpan(line, col, col+len([]rune(raw))),
	})
}

// TextBlock is a text block literal whose raw text starts at line:col.
func (j *Java) TextBlock(raw string, line, col int) ast.NodeID {
	endLine, endCol := line, col
	for _, r := range raw {
		if r == '\n' {
			endLine++
			endCol = 0
			continue
		}
		endCol++
	}
	return j.add(ast.Node{
		Kind: ast.KindTextBlock,
		Text: raw,
		Span: source.NewTextSpan(line, col, endLine, endCol),
	})
}

// Lit is any other literal token.
func (j *Java) Lit(kind ast.Kind, raw string) ast.NodeID {
	return j.add(ast.Node{Kind: kind, Text: raw})
}
