package binding

import (
	"jsema/internal/ast"
	"jsema/internal/source"
)

// Key addresses a syntax node across compilation units.
type Key struct {
	File source.FileID
	Node ast.NodeID
}

// Bindings maps declaration and type-reference nodes to table handles.
// Like the table it is written once by Bind and read-only afterwards.
type Bindings struct {
	trees   map[source.FileID]*ast.Tree
	types   map[Key]TypeID
	methods map[Key]MethodID
	refs    map[Key]TypeID
	names   map[Key]TypeID // identifiers and qualified names used as types
}

func newBindings() *Bindings {
	return &Bindings{
		trees:   make(map[source.FileID]*ast.Tree),
		types:   make(map[Key]TypeID),
		methods: make(map[Key]MethodID),
		refs:    make(map[Key]TypeID),
		names:   make(map[Key]TypeID),
	}
}

// Tree returns the compilation unit bound for file.
func (b *Bindings) Tree(file source.FileID) *ast.Tree { return b.trees[file] }

// Node resolves a declaration reference to its tree and node.
func (b *Bindings) Node(ref DeclRef) (*ast.Tree, *ast.Node) {
	tree := b.trees[ref.File]
	if tree == nil {
		return nil, nil
	}
	return tree, tree.Get(ref.Node)
}

// TypeOf returns the type declared by a class, interface, enum, record,
// annotation type or anonymous class body node.
func (b *Bindings) TypeOf(file source.FileID, node ast.NodeID) TypeID {
	return b.types[Key{file, node}]
}

// MethodOf returns the method declared by a method or constructor node.
func (b *Bindings) MethodOf(file source.FileID, node ast.NodeID) MethodID {
	return b.methods[Key{file, node}]
}

// ResolveTypeRef returns the type a type-reference node denotes. `var` and
// nodes that are not type references yield NoTypeID.
func (b *Bindings) ResolveTypeRef(file source.FileID, node ast.NodeID) TypeID {
	return b.refs[Key{file, node}]
}

// TypeName returns the type an identifier or field access in expression
// position denotes when it names a type (Pattern in Pattern.compile).
func (b *Bindings) TypeName(file source.FileID, node ast.NodeID) TypeID {
	return b.names[Key{file, node}]
}

// Methods returns every bound method declaration of file.
func (b *Bindings) Methods(file source.FileID) []ast.NodeID {
	tree := b.trees[file]
	if tree == nil {
		return nil
	}
	return tree.Collect(tree.Root, ast.KindMethod, ast.KindConstructor)
}
