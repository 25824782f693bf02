//go:build cgo

package frontend

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"jsema/internal/ast"
	"jsema/internal/source"
)

// converter lowers a tree-sitter CST into ast nodes. Children are always
// added before their parent (ast.Tree.Add adopts them).
type converter struct {
	file *source.File
	tree *ast.Tree
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.file.Content[n.StartByte():n.EndByte()])
}

func (c *converter) span(n *sitter.Node) source.TextSpan {
	sp, ep := n.StartPoint(), n.EndPoint()
	return source.NewTextSpan(
		toInt(sp.Row+1), c.file.RuneColumn(sp.Row+1, sp.Column),
		toInt(ep.Row+1), c.file.RuneColumn(ep.Row+1, ep.Column),
	)
}

func (c *converter) add(n *sitter.Node, node ast.Node) ast.NodeID {
	node.Span = c.span(n)
	return c.tree.Add(node)
}

func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	for _, ch := range named(n) {
		for _, t := range types {
			if ch.Type() == t {
				return ch
			}
		}
	}
	return nil
}

func (c *converter) unit(root *sitter.Node) ast.NodeID {
	var pkg string
	var imports, types []ast.NodeID
	for _, ch := range named(root) {
		switch ch.Type() {
		case "package_declaration":
			if id := childOfType(ch, "scoped_identifier", "identifier"); id != nil {
				pkg = c.text(id)
			}
		case "import_declaration":
			imports = append(imports, c.importDecl(ch))
		default:
			if isTypeDecl(ch.Type()) {
				types = append(types, c.typeDecl(ch))
			}
		}
	}
	return c.add(root, ast.Node{Kind: ast.KindCompilationUnit, Name: pkg, Children: imports, Members: types})
}

func (c *converter) importDecl(n *sitter.Node) ast.NodeID {
	var mods ast.Modifiers
	var name string
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		switch ch.Type() {
		case "static":
			mods |= ast.ModStatic
		case "scoped_identifier", "identifier":
			name = c.text(ch)
		case "asterisk":
			name += ".*"
		}
	}
	return c.add(n, ast.Node{Kind: ast.KindImport, Name: name, Mods: mods})
}

var typeDeclKinds = map[string]ast.Kind{
	"class_declaration":           ast.KindClass,
	"interface_declaration":       ast.KindInterface,
	"enum_declaration":            ast.KindEnum,
	"record_declaration":          ast.KindRecord,
	"annotation_type_declaration": ast.KindAnnotationType,
}

func isTypeDecl(t string) bool {
	_, ok := typeDeclKinds[t]
	return ok
}

// modifiers reads the modifiers child of a declaration.
func (c *converter) modifiers(n *sitter.Node) (ast.Modifiers, []ast.NodeID) {
	m := childOfType(n, "modifiers")
	if m == nil {
		return 0, nil
	}
	var mods ast.Modifiers
	var annots []ast.NodeID
	for i := 0; i < int(m.ChildCount()); i++ {
		ch := m.Child(i)
		switch ch.Type() {
		case "marker_annotation", "annotation":
			name := ""
			if nn := ch.ChildByFieldName("name"); nn != nil {
				name = c.text(nn)
			}
			annots = append(annots, c.add(ch, ast.Node{Kind: ast.KindAnnotation, Name: name}))
		default:
			mods |= ast.ParseModifier(ch.Type())
		}
	}
	return mods, annots
}

func (c *converter) typeDecl(n *sitter.Node) ast.NodeID {
	mods, annots := c.modifiers(n)
	node := ast.Node{
		Kind:        typeDeclKinds[n.Type()],
		Mods:        mods,
		Annotations: annots,
	}
	if nn := n.ChildByFieldName("name"); nn != nil {
		node.Name = c.text(nn)
	}
	node.TypeParams = c.typeParams(n.ChildByFieldName("type_parameters"))
	if sup := n.ChildByFieldName("superclass"); sup != nil {
		if t := firstType(sup); t != nil {
			node.Superclass = c.typeRef(t)
		}
	}
	ifaces := n.ChildByFieldName("interfaces")
	if ifaces == nil {
		ifaces = childOfType(n, "extends_interfaces")
	}
	node.Interfaces = c.typeList(ifaces)
	if node.Kind == ast.KindRecord {
		node.Params = c.params(n.ChildByFieldName("parameters"))
	}
	node.Members = c.members(n.ChildByFieldName("body"), node.Name)
	return c.add(n, node)
}

func (c *converter) typeParams(n *sitter.Node) []ast.NodeID {
	var out []ast.NodeID
	for _, tp := range named(n) {
		if tp.Type() != "type_parameter" {
			continue
		}
		var name string
		var bounds []ast.NodeID
		for _, ch := range named(tp) {
			switch ch.Type() {
			case "type_identifier", "identifier":
				name = c.text(ch)
			case "type_bound":
				for _, b := range named(ch) {
					bounds = append(bounds, c.typeRef(b))
				}
			}
		}
		out = append(out, c.add(tp, ast.Node{Kind: ast.KindTypeParam, Name: name, Interfaces: bounds}))
	}
	return out
}

// typeList converts super_interfaces, extends_interfaces or a bare type_list.
func (c *converter) typeList(n *sitter.Node) []ast.NodeID {
	if n == nil {
		return nil
	}
	if n.Type() != "type_list" {
		n = childOfType(n, "type_list")
	}
	var out []ast.NodeID
	for _, t := range named(n) {
		out = append(out, c.typeRef(t))
	}
	return out
}

func (c *converter) members(body *sitter.Node, owner string) []ast.NodeID {
	var out []ast.NodeID
	for _, ch := range named(body) {
		switch t := ch.Type(); {
		case t == "field_declaration" || t == "constant_declaration":
			out = append(out, c.variables(ch, ast.KindField)...)
		case t == "method_declaration":
			out = append(out, c.method(ch, ast.KindMethod))
		case t == "constructor_declaration" || t == "compact_constructor_declaration":
			out = append(out, c.method(ch, ast.KindConstructor))
		case t == "annotation_type_element_declaration":
			out = append(out, c.method(ch, ast.KindMethod))
		case t == "enum_constant":
			out = append(out, c.enumConstant(ch, owner))
		case t == "enum_body_declarations":
			out = append(out, c.members(ch, owner)...)
		case isTypeDecl(t):
			out = append(out, c.typeDecl(ch))
		case t == "block" || t == "static_initializer":
			if id := c.node(ch); id.IsValid() {
				out = append(out, id)
			}
		}
	}
	return out
}

func (c *converter) enumConstant(n *sitter.Node, owner string) ast.NodeID {
	_, annots := c.modifiers(n)
	node := ast.Node{
		Kind:        ast.KindField,
		Mods:        ast.ModPublic | ast.ModStatic | ast.ModFinal,
		Annotations: annots,
	}
	if nn := n.ChildByFieldName("name"); nn != nil {
		node.Name = c.text(nn)
	}
	node.Type = c.tree.Add(ast.Node{Kind: ast.KindTypeRef, Name: owner, Span: c.span(n)})
	if body := n.ChildByFieldName("body"); body != nil {
		typ := c.tree.Add(ast.Node{Kind: ast.KindTypeRef, Name: owner, Span: c.span(n)})
		node.Value = c.add(n, ast.Node{
			Kind:    ast.KindNewObject,
			Type:    typ,
			Args:    c.args(n.ChildByFieldName("arguments")),
			Members: c.members(body, owner),
		})
	}
	return c.add(n, node)
}

func (c *converter) method(n *sitter.Node, kind ast.Kind) ast.NodeID {
	mods, annots := c.modifiers(n)
	node := ast.Node{Kind: kind, Mods: mods, Annotations: annots}
	if nn := n.ChildByFieldName("name"); nn != nil {
		node.Name = c.text(nn)
	}
	node.TypeParams = c.typeParams(n.ChildByFieldName("type_parameters"))
	if kind == ast.KindMethod {
		if t := n.ChildByFieldName("type"); t != nil {
			node.Type = c.typeRef(t)
			if d := n.ChildByFieldName("dimensions"); d != nil {
				c.tree.Get(node.Type).Dims += dims(c.text(d))
			}
		}
	}
	node.Params = c.params(n.ChildByFieldName("parameters"))
	if th := childOfType(n, "throws"); th != nil {
		for _, t := range named(th) {
			node.Throws = append(node.Throws, c.typeRef(t))
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		node.Body = c.block(body)
	}
	return c.add(n, node)
}

func (c *converter) params(n *sitter.Node) []ast.NodeID {
	var out []ast.NodeID
	for _, p := range named(n) {
		switch p.Type() {
		case "formal_parameter":
			mods, annots := c.modifiers(p)
			node := ast.Node{Kind: ast.KindParameter, Mods: mods, Annotations: annots}
			if t := p.ChildByFieldName("type"); t != nil {
				node.Type = c.typeRef(t)
			}
			if nn := p.ChildByFieldName("name"); nn != nil {
				node.Name = c.text(nn)
			}
			if d := p.ChildByFieldName("dimensions"); d != nil {
				node.Dims = dims(c.text(d))
			}
			out = append(out, c.add(p, node))
		case "spread_parameter":
			mods, annots := c.modifiers(p)
			node := ast.Node{Kind: ast.KindParameter, Mods: mods, Annotations: annots}
			if t := firstType(p); t != nil {
				node.Type = c.typeRef(t)
				c.tree.Get(node.Type).Dims++ // T... is T[]
			}
			if d := childOfType(p, "variable_declarator"); d != nil {
				if nn := d.ChildByFieldName("name"); nn != nil {
					node.Name = c.text(nn)
				}
			}
			out = append(out, c.add(p, node))
		case "identifier":
			// lambda parameter without a type
			out = append(out, c.add(p, ast.Node{Kind: ast.KindParameter, Name: c.text(p)}))
		}
	}
	return out
}

// variables expands a field or local declaration into one node per
// declarator. Each declarator gets its own copy of the type and modifiers.
func (c *converter) variables(n *sitter.Node, kind ast.Kind) []ast.NodeID {
	var decls []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) == "declarator" {
			decls = append(decls, n.Child(i))
		}
	}
	typeNode := n.ChildByFieldName("type")
	out := make([]ast.NodeID, 0, len(decls))
	for _, d := range decls {
		mods, annots := c.modifiers(n)
		node := ast.Node{Kind: kind, Mods: mods, Annotations: annots}
		if typeNode != nil {
			node.Type = c.typeRef(typeNode)
		}
		if nn := d.ChildByFieldName("name"); nn != nil {
			node.Name = c.text(nn)
		}
		if dd := d.ChildByFieldName("dimensions"); dd != nil {
			node.Dims = dims(c.text(dd))
		}
		if v := d.ChildByFieldName("value"); v != nil {
			node.Value = c.node(v)
		}
		at := n
		if len(decls) > 1 {
			at = d
		}
		out = append(out, c.add(at, node))
	}
	return out
}

var typeKinds = map[string]bool{
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"array_type":             true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"void_type":              true,
	"annotated_type":         true,
}

func firstType(n *sitter.Node) *sitter.Node {
	for _, ch := range named(n) {
		if typeKinds[ch.Type()] {
			return ch
		}
	}
	return nil
}

func (c *converter) typeRef(n *sitter.Node) ast.NodeID {
	switch n.Type() {
	case "generic_type":
		var name string
		var args []ast.NodeID
		for _, ch := range named(n) {
			switch ch.Type() {
			case "type_identifier", "scoped_type_identifier":
				name = stripTypeArgs(c.text(ch))
			case "type_arguments":
				for _, a := range named(ch) {
					args = append(args, c.typeRef(a))
				}
			}
		}
		return c.add(n, ast.Node{Kind: ast.KindTypeRef, Name: name, Args: args})
	case "array_type":
		elem := n.ChildByFieldName("element")
		if elem == nil {
			break
		}
		id := c.typeRef(elem)
		ref := c.tree.Get(id)
		if d := n.ChildByFieldName("dimensions"); d != nil {
			ref.Dims += dims(c.text(d))
		}
		ref.Span = c.span(n)
		return id
	case "annotated_type":
		if t := firstType(n); t != nil {
			return c.typeRef(t)
		}
	case "wildcard":
		var args []ast.NodeID
		if t := firstType(n); t != nil {
			args = append(args, c.typeRef(t))
		}
		return c.add(n, ast.Node{Kind: ast.KindTypeRef, Name: "?", Args: args})
	}
	return c.add(n, ast.Node{Kind: ast.KindTypeRef, Name: stripTypeArgs(c.text(n))})
}

// stripTypeArgs turns `Outer<String>.Inner` into `Outer.Inner` and drops
// whitespace and type annotations.
func stripTypeArgs(s string) string {
	var sb strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '<':
			depth++
		case ch == '>':
			depth--
		case depth > 0, ch == ' ', ch == '\t', ch == '\n', ch == '\r':
		case ch == '@':
			// @Ann Type: skip the annotation name
			for i+1 < len(s) && s[i+1] != ' ' {
				i++
			}
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

func dims(text string) int {
	return strings.Count(text, "[")
}

func (c *converter) block(n *sitter.Node) ast.NodeID {
	return c.add(n, ast.Node{Kind: ast.KindBlock, Children: c.children(n)})
}

// children converts the named children of a statement-like node, expanding
// multi-declarator locals.
func (c *converter) children(n *sitter.Node) []ast.NodeID {
	var out []ast.NodeID
	for _, ch := range named(n) {
		if ch.Type() == "local_variable_declaration" {
			out = append(out, c.variables(ch, ast.KindLocalVariable)...)
			continue
		}
		if id := c.node(ch); id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

func (c *converter) args(n *sitter.Node) []ast.NodeID {
	var out []ast.NodeID
	for _, a := range named(n) {
		if id := c.node(a); id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

var literalKinds = map[string]ast.Kind{
	"character_literal":              ast.KindCharLiteral,
	"decimal_integer_literal":        ast.KindNumberLiteral,
	"hex_integer_literal":            ast.KindNumberLiteral,
	"octal_integer_literal":          ast.KindNumberLiteral,
	"binary_integer_literal":         ast.KindNumberLiteral,
	"decimal_floating_point_literal": ast.KindNumberLiteral,
	"hex_floating_point_literal":     ast.KindNumberLiteral,
	"true":                           ast.KindBoolLiteral,
	"false":                          ast.KindBoolLiteral,
	"null_literal":                   ast.KindNullLiteral,
}

// node converts an expression or statement. Comments yield NoNodeID.
func (c *converter) node(n *sitter.Node) ast.NodeID {
	t := n.Type()
	if k, ok := literalKinds[t]; ok {
		return c.add(n, ast.Node{Kind: k, Text: c.text(n)})
	}
	if typeKinds[t] {
		return c.typeRef(n)
	}
	if isTypeDecl(t) {
		return c.typeDecl(n)
	}
	switch t {
	case "line_comment", "block_comment":
		return ast.NoNodeID
	case "block", "constructor_body":
		return c.block(n)
	case "local_variable_declaration":
		vars := c.variables(n, ast.KindLocalVariable)
		if len(vars) == 1 {
			return vars[0]
		}
		return c.add(n, ast.Node{Kind: ast.KindOther, Children: vars})
	case "string_literal":
		raw := c.text(n)
		kind := ast.KindStringLiteral
		if strings.HasPrefix(raw, `"""`) {
			kind = ast.KindTextBlock
		}
		return c.add(n, ast.Node{Kind: kind, Text: raw})
	case "identifier":
		return c.add(n, ast.Node{Kind: ast.KindIdentifier, Name: c.text(n)})
	case "parenthesized_expression":
		if inner := named(n); len(inner) == 1 {
			return c.node(inner[0])
		}
	case "method_invocation":
		node := ast.Node{Kind: ast.KindMethodCall}
		if obj := n.ChildByFieldName("object"); obj != nil {
			node.Object = c.node(obj)
		}
		if nn := n.ChildByFieldName("name"); nn != nil {
			node.Name = c.text(nn)
		}
		node.Args = c.args(n.ChildByFieldName("arguments"))
		return c.add(n, node)
	case "object_creation_expression":
		node := ast.Node{Kind: ast.KindNewObject}
		if typ := n.ChildByFieldName("type"); typ != nil {
			node.Type = c.typeRef(typ)
		}
		node.Args = c.args(n.ChildByFieldName("arguments"))
		if body := childOfType(n, "class_body"); body != nil {
			owner := ""
			if ref := c.tree.Get(node.Type); ref != nil {
				owner = ref.Name
			}
			node.Members = c.members(body, owner)
		}
		return c.add(n, node)
	case "field_access":
		node := ast.Node{Kind: ast.KindFieldAccess}
		if obj := n.ChildByFieldName("object"); obj != nil {
			node.Object = c.node(obj)
		}
		if f := n.ChildByFieldName("field"); f != nil {
			node.Name = c.text(f)
		}
		return c.add(n, node)
	case "class_literal":
		node := ast.Node{Kind: ast.KindClassLiteral}
		if typ := firstType(n); typ != nil {
			node.Type = c.typeRef(typ)
		}
		return c.add(n, node)
	case "binary_expression":
		node := ast.Node{Kind: ast.KindBinary}
		if op := n.ChildByFieldName("operator"); op != nil {
			node.Name = op.Type()
		}
		if l := n.ChildByFieldName("left"); l != nil {
			node.Left = c.node(l)
		}
		if r := n.ChildByFieldName("right"); r != nil {
			node.Right = c.node(r)
		}
		return c.add(n, node)
	case "lambda_expression":
		node := ast.Node{Kind: ast.KindLambda}
		if ps := n.ChildByFieldName("parameters"); ps != nil {
			if ps.Type() == "identifier" {
				node.Params = []ast.NodeID{c.add(ps, ast.Node{Kind: ast.KindParameter, Name: c.text(ps)})}
			} else {
				node.Params = c.params(ps)
			}
		}
		if body := n.ChildByFieldName("body"); body != nil {
			node.Body = c.node(body)
		}
		return c.add(n, node)
	}
	return c.add(n, ast.Node{Kind: ast.KindOther, Name: t, Children: c.children(n)})
}
