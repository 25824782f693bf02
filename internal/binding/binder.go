package binding

import (
	"strconv"
	"strings"

	"jsema/internal/ast"
)

// Bind builds a frozen Table and the node bindings for a set of compilation
// units. Binding never fails: names that cannot be resolved become recovered
// types, which the symbol layer reports as unknown.
func Bind(trees []*ast.Tree) (*Table, *Bindings) {
	b := newBinder(NewTable())
	for _, tree := range trees {
		if tree != nil {
			b.out.trees[tree.File] = tree
		}
	}
	b.bind(trees)
	b.table.Freeze()
	return b.table, b.out
}

type unitDecl struct {
	tree *ast.Tree
	node ast.NodeID
	id   TypeID
}

type binder struct {
	table     *Table
	out       *Bindings
	decls     []unitDecl
	tvars     map[Key]TypeID
	recovered map[string]TypeID
	anonSeq   map[TypeID]int
	localSeq  map[string]int
	object    TypeID
}

func newBinder(t *Table) *binder {
	return &binder{
		table:     t,
		out:       newBindings(),
		tvars:     make(map[Key]TypeID),
		recovered: make(map[string]TypeID),
		anonSeq:   make(map[TypeID]int),
		localSeq:  make(map[string]int),
		object:    t.Lookup(ObjectName),
	}
}

func (b *binder) bind(trees []*ast.Tree) {
	// 1: every class-like declaration gets a handle so forward references work.
	for _, tree := range trees {
		if tree != nil {
			b.declareTypes(tree)
		}
	}
	// 2: type parameters, then supertypes in declaration order.
	for _, d := range b.decls {
		b.declareTypeParams(d.tree, d.tree.Get(d.node).TypeParams)
	}
	for _, d := range b.decls {
		b.bindSupertypes(d)
	}
	for _, d := range b.decls {
		b.boundTypeParams(d.tree, d.tree.Get(d.node).TypeParams)
	}
	// 3: members.
	for _, d := range b.decls {
		b.bindMembers(d)
	}
	// 4: every remaining type reference and type-valued name.
	for _, tree := range trees {
		if tree == nil {
			continue
		}
		tree.Walk(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
			switch n.Kind {
			case ast.KindTypeRef:
				b.resolveRef(tree, id)
			case ast.KindMethodCall, ast.KindFieldAccess:
				b.bindReceiver(tree, n.Object)
			}
			return true
		})
	}
}

func isTypeDecl(n *ast.Node) bool {
	return n.Kind.IsTypeDecl() || (n.Kind == ast.KindNewObject && len(n.Members) > 0)
}

// typeScope returns the closest enclosing class-like node of id (excluding id).
func typeScope(tree *ast.Tree, id ast.NodeID) ast.NodeID {
	n := tree.Get(id)
	for n != nil && n.Parent.IsValid() {
		pid := n.Parent
		p := tree.Get(pid)
		if p != nil && isTypeDecl(p) {
			return pid
		}
		n = p
	}
	return ast.NoNodeID
}

func (b *binder) declareTypes(tree *ast.Tree) {
	pkg := tree.Package()
	tree.Walk(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		if !isTypeDecl(n) {
			return true
		}
		outer := typeScope(tree, id)
		outerID := b.out.TypeOf(tree.File, outer)
		info := TypeInfo{
			Package: pkg,
			Mods:    n.Mods,
			Decl:    DeclRef{File: tree.File, Node: id},
		}
		switch n.Kind {
		case ast.KindInterface:
			info.Kind = TypeInterface
		case ast.KindAnnotationType:
			info.Kind = TypeAnnotation
		case ast.KindEnum:
			info.Kind = TypeEnum
		case ast.KindRecord:
			info.Kind = TypeRecord
		default:
			info.Kind = TypeClass
		}
		oi := b.table.Type(outerID)
		if oi == nil && n.Kind == ast.KindNewObject {
			return true
		}
		switch {
		case n.Kind == ast.KindNewObject:
			b.anonSeq[outerID]++
			seq := strconv.Itoa(b.anonSeq[outerID])
			info.QualifiedName = oi.QualifiedName + "." + seq
			info.BinaryName = oi.BinaryName + "$" + seq
		case oi == nil:
			info.QualifiedName = qualify(pkg, n.Name)
			info.BinaryName = info.QualifiedName
		case tree.Get(n.Parent).Kind == ast.KindBlock:
			key := oi.BinaryName + "$" + n.Name
			b.localSeq[key]++
			info.QualifiedName = oi.QualifiedName + "." + n.Name
			info.BinaryName = oi.BinaryName + "$" + strconv.Itoa(b.localSeq[key]) + n.Name
		default:
			info.QualifiedName = oi.QualifiedName + "." + n.Name
			info.BinaryName = oi.BinaryName + "$" + n.Name
		}
		if info.Kind == TypeInterface || info.Kind == TypeAnnotation {
			info.Mods |= ast.ModAbstract
		}
		tid := b.table.NewType(info)
		b.out.types[Key{tree.File, id}] = tid
		b.decls = append(b.decls, unitDecl{tree: tree, node: id, id: tid})
		return true
	})
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func (b *binder) declareTypeParams(tree *ast.Tree, params []ast.NodeID) {
	for _, p := range params {
		if n := tree.Get(p); n != nil {
			b.tvars[Key{tree.File, p}] = b.table.NewTypeVar(n.Name, b.object)
		}
	}
}

func (b *binder) boundTypeParams(tree *ast.Tree, params []ast.NodeID) {
	for _, p := range params {
		n := tree.Get(p)
		if n == nil || len(n.Interfaces) == 0 {
			continue
		}
		b.table.SetErasure(b.tvars[Key{tree.File, p}], b.resolveRef(tree, n.Interfaces[0]))
	}
}

func (b *binder) bindSupertypes(d unitDecl) {
	n := d.tree.Get(d.node)
	info := b.table.Type(d.id)
	switch info.Kind {
	case TypeInterface:
		for _, i := range n.Interfaces {
			b.table.AddInterface(d.id, b.resolveRef(d.tree, i))
		}
		return
	case TypeAnnotation:
		b.table.AddInterface(d.id, b.table.Lookup("java.lang.annotation.Annotation"))
		return
	case TypeEnum:
		b.table.SetSuperclass(d.id, b.table.Lookup("java.lang.Enum"))
	case TypeRecord:
		b.table.SetSuperclass(d.id, b.table.Lookup("java.lang.Record"))
	default:
		if info.QualifiedName == ObjectName {
			return
		}
		if n.Kind == ast.KindNewObject {
			b.bindAnonymousSuper(d, n)
			return
		}
		super := b.object
		if n.Superclass.IsValid() {
			super = b.resolveRef(d.tree, n.Superclass)
		}
		b.table.SetSuperclass(d.id, super)
	}
	for _, i := range n.Interfaces {
		b.table.AddInterface(d.id, b.resolveRef(d.tree, i))
	}
}

// bindAnonymousSuper wires `new T() {...}`: T is either the superclass or the
// single implemented interface.
func (b *binder) bindAnonymousSuper(d unitDecl, n *ast.Node) {
	t := b.resolveRef(d.tree, n.Type)
	if b.table.IsInterface(t) {
		b.table.SetSuperclass(d.id, b.object)
		b.table.AddInterface(d.id, t)
		return
	}
	if !t.IsValid() {
		t = b.object
	}
	b.table.SetSuperclass(d.id, t)
}

func (b *binder) bindMembers(d unitDecl) {
	n := d.tree.Get(d.node)
	inInterface := b.table.IsInterface(d.id)
	for _, m := range n.Members {
		mn := d.tree.Get(m)
		if mn == nil || (mn.Kind != ast.KindMethod && mn.Kind != ast.KindConstructor) {
			continue
		}
		b.declareTypeParams(d.tree, mn.TypeParams)
		b.boundTypeParams(d.tree, mn.TypeParams)

		info := MethodInfo{
			Name:        mn.Name,
			Owner:       d.id,
			Mods:        mn.Mods,
			Constructor: mn.Kind == ast.KindConstructor,
			Decl:        DeclRef{File: d.tree.File, Node: m},
		}
		if inInterface {
			if !info.Mods.Has(ast.ModPrivate) {
				info.Mods |= ast.ModPublic
			}
			if !mn.Body.IsValid() && info.Mods&(ast.ModStatic|ast.ModDefault|ast.ModPrivate) == 0 {
				info.Mods |= ast.ModAbstract
			}
		}
		for _, tp := range mn.TypeParams {
			info.TypeParams = append(info.TypeParams, b.tvars[Key{d.tree.File, tp}])
		}
		for _, p := range mn.Params {
			info.Params = append(info.Params, b.paramType(d.tree, p))
		}
		if !info.Constructor {
			info.Return = b.resolveRef(d.tree, mn.Type)
		}
		for _, th := range mn.Throws {
			info.Thrown = append(info.Thrown, b.resolveRef(d.tree, th))
		}
		b.out.methods[Key{d.tree.File, m}] = b.table.NewMethod(info)
	}
}

// paramType handles C-style array dimensions written after the parameter name.
func (b *binder) paramType(tree *ast.Tree, p ast.NodeID) TypeID {
	pn := tree.Get(p)
	if pn == nil {
		return NoTypeID
	}
	t := b.resolveRef(tree, pn.Type)
	for range pn.Dims {
		t = b.table.ArrayOf(t)
	}
	return t
}

func (b *binder) resolveRef(tree *ast.Tree, id ast.NodeID) TypeID {
	n := tree.Get(id)
	if n == nil || n.Kind != ast.KindTypeRef {
		return NoTypeID
	}
	key := Key{tree.File, id}
	if t, ok := b.out.refs[key]; ok {
		return t
	}
	if n.Name == "var" && n.Dims == 0 && len(n.Args) == 0 {
		b.out.refs[key] = NoTypeID
		return NoTypeID
	}
	t := b.lookupName(tree, id, n.Name)
	if !t.IsValid() {
		t = b.recover(tree, n.Name)
	}
	for range n.Dims {
		t = b.table.ArrayOf(t)
	}
	b.out.refs[key] = t
	return t
}

func (b *binder) recover(tree *ast.Tree, name string) TypeID {
	if i := strings.IndexByte(name, '.'); i < 0 {
		// a simple name that only a single-type import could have provided
		for _, imp := range tree.Imports() {
			in := tree.Get(imp)
			if in != nil && !in.Mods.Has(ast.ModStatic) && lastSegment(in.Name) == name {
				name = in.Name
				break
			}
		}
	}
	if t, ok := b.recovered[name]; ok {
		return t
	}
	t := b.table.Recovered(name)
	b.recovered[name] = t
	return t
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

var primitiveNames = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// lookupName resolves a possibly qualified type name as written at node ctx.
// NoTypeID means the name is not visible.
func (b *binder) lookupName(tree *ast.Tree, ctx ast.NodeID, name string) TypeID {
	if primitiveNames[name] {
		return b.table.Lookup(name)
	}
	head, rest, qualified := strings.Cut(name, ".")
	if qualified {
		if t := b.table.Lookup(name); t.IsValid() {
			return t
		}
		t := b.lookupSimple(tree, ctx, head)
		for _, seg := range strings.Split(rest, ".") {
			if !t.IsValid() {
				return NoTypeID
			}
			t = b.memberType(t, seg, 0)
		}
		return t
	}
	return b.lookupSimple(tree, ctx, name)
}

func (b *binder) lookupSimple(tree *ast.Tree, ctx ast.NodeID, name string) TypeID {
	// type variables of enclosing methods and types
	for id := ctx; id.IsValid(); {
		n := tree.Get(id)
		if n == nil {
			break
		}
		for _, tp := range n.TypeParams {
			if pn := tree.Get(tp); pn != nil && pn.Name == name {
				if t := b.tvars[Key{tree.File, tp}]; t.IsValid() {
					return t
				}
			}
		}
		id = n.Parent
	}
	// member types of enclosing types, including inherited ones
	for scope := typeScope(tree, ctx); scope.IsValid(); scope = typeScope(tree, scope) {
		owner := b.out.TypeOf(tree.File, scope)
		if n := tree.Get(scope); n != nil && n.Name == name && n.Kind != ast.KindNewObject {
			return owner
		}
		if t := b.memberType(owner, name, 0); t.IsValid() {
			return t
		}
	}
	imports := tree.Imports()
	for _, imp := range imports {
		in := tree.Get(imp)
		if in == nil || in.Mods.Has(ast.ModStatic) || strings.HasSuffix(in.Name, ".*") {
			continue
		}
		if lastSegment(in.Name) == name {
			return b.table.Lookup(in.Name)
		}
	}
	if t := b.table.Lookup(qualify(tree.Package(), name)); t.IsValid() {
		return t
	}
	if t := b.table.Lookup("java.lang." + name); t.IsValid() {
		return t
	}
	for _, imp := range imports {
		in := tree.Get(imp)
		if in == nil || in.Mods.Has(ast.ModStatic) {
			continue
		}
		if prefix, ok := strings.CutSuffix(in.Name, ".*"); ok {
			if t := b.table.Lookup(prefix + "." + name); t.IsValid() {
				return t
			}
		}
	}
	return NoTypeID
}

// memberType finds a member type by simple name on t or its supertypes.
func (b *binder) memberType(t TypeID, name string, depth int) TypeID {
	info := b.table.Type(t)
	if info == nil || depth > 32 {
		return NoTypeID
	}
	if m := b.table.Lookup(info.QualifiedName + "." + name); m.IsValid() {
		return m
	}
	if m := b.memberType(info.Superclass, name, depth+1); m.IsValid() {
		return m
	}
	for _, i := range info.Interfaces {
		if m := b.memberType(i, name, depth+1); m.IsValid() {
			return m
		}
	}
	return NoTypeID
}

// bindReceiver records receivers such as Pattern in Pattern.compile(...)
// when the name denotes a type and no variable of that name is in scope.
func (b *binder) bindReceiver(tree *ast.Tree, id ast.NodeID) {
	n := tree.Get(id)
	if n == nil {
		return
	}
	var name string
	switch n.Kind {
	case ast.KindIdentifier:
		name = n.Name
		if shadowed(tree, id, name) {
			return
		}
	case ast.KindFieldAccess:
		name = qualifiedExpr(tree, id)
	default:
		return
	}
	if name == "" {
		return
	}
	if t := b.lookupName(tree, id, name); t.IsValid() {
		b.out.names[Key{tree.File, id}] = t
	}
}

// qualifiedExpr renders a chain of field accesses over identifiers as a
// dotted name, or "" for any other shape.
func qualifiedExpr(tree *ast.Tree, id ast.NodeID) string {
	n := tree.Get(id)
	if n == nil {
		return ""
	}
	switch n.Kind {
	case ast.KindIdentifier:
		return n.Name
	case ast.KindFieldAccess:
		head := qualifiedExpr(tree, n.Object)
		if head == "" {
			return ""
		}
		return head + "." + n.Name
	}
	return ""
}

// shadowed reports whether a parameter, local variable or field named name
// is visible at id.
func shadowed(tree *ast.Tree, id ast.NodeID, name string) bool {
	prev := id
	for cur := tree.Get(id); cur != nil && cur.Parent.IsValid(); {
		pid := cur.Parent
		p := tree.Get(pid)
		if p == nil {
			return false
		}
		for _, param := range p.Params {
			if pn := tree.Get(param); pn != nil && pn.Name == name {
				return true
			}
		}
		if p.Kind == ast.KindBlock {
			for _, c := range p.Children {
				if c == prev {
					break
				}
				if cn := tree.Get(c); cn != nil && cn.Kind == ast.KindLocalVariable && cn.Name == name {
					return true
				}
			}
		}
		if isTypeDecl(p) {
			for _, m := range p.Members {
				if mn := tree.Get(m); mn != nil && mn.Kind == ast.KindField && mn.Name == name {
					return true
				}
			}
		}
		prev = pid
		cur = p
	}
	return false
}
