package ast

import (
	"jsema/internal/source"
)

// Node is a single syntax node. Which role slots are populated depends on Kind:
//
//   - compilation unit: Name = package, Children = imports, Members = types
//   - import: Name = qualified name (with ".*" for on-demand imports), Mods may carry ModStatic
//   - type declarations: Name, Mods, Annotations, TypeParams, Superclass,
//     Interfaces, Params (record components), Members
//   - method / constructor: Name, Mods, Annotations, TypeParams, Type (return),
//     Params, Throws, Body
//   - parameter / field / local variable: Name, Mods, Annotations, Type, Value, Dims
//   - type ref: Name as written without type arguments, Args = type arguments, Dims
//   - type param: Name, Interfaces = bounds
//   - annotation: Name
//   - new object: Type, Args, Members (anonymous body)
//   - method call: Name, Object, Args
//   - field access: Name, Object
//   - class literal: Type
//   - literals: Text = raw token text
//   - binary: Name = operator, Left, Right
//   - lambda: Params, Body
//   - identifier: Name
//   - block / other: Children
type Node struct {
	Kind Kind
	Span source.TextSpan
	Name string
	Text string
	Mods Modifiers
	Dims int

	Parent NodeID

	Annotations []NodeID
	TypeParams  []NodeID
	Type        NodeID
	Superclass  NodeID
	Interfaces  []NodeID
	Params      []NodeID
	Throws      []NodeID
	Object      NodeID
	Left        NodeID
	Right       NodeID
	Value       NodeID
	Args        []NodeID
	Body        NodeID
	Members     []NodeID
	Children    []NodeID
}

// Tree is one parsed compilation unit.
type Tree struct {
	File  source.FileID
	Path  string
	Nodes *Arena[Node]
	Root  NodeID
}

// NewTree allocates an empty tree for the given file.
func NewTree(file source.FileID, path string, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Tree{
		File:  file,
		Path:  path,
		Nodes: NewArena[Node](capHint),
	}
}

// New allocates a node and returns its id.
func (t *Tree) New(kind Kind, span source.TextSpan) NodeID {
	return NodeID(t.Nodes.Allocate(Node{Kind: kind, Span: span}))
}

// Get returns the node or nil for NoNodeID.
func (t *Tree) Get(id NodeID) *Node {
	if t == nil {
		return nil
	}
	return t.Nodes.Get(uint32(id))
}

// KindOf returns the kind of id, KindInvalid when absent.
func (t *Tree) KindOf(id NodeID) Kind {
	if n := t.Get(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Adopt sets parent as the Parent of every valid child.
func (t *Tree) Adopt(parent NodeID, children ...NodeID) {
	for _, c := range children {
		if n := t.Get(c); n != nil {
			n.Parent = parent
		}
	}
}

// Package returns the package name of the compilation unit.
func (t *Tree) Package() string {
	if root := t.Get(t.Root); root != nil {
		return root.Name
	}
	return ""
}

// Imports returns the import nodes of the compilation unit.
func (t *Tree) Imports() []NodeID {
	if root := t.Get(t.Root); root != nil {
		return root.Children
	}
	return nil
}

// TypeDecls returns the top-level type declarations.
func (t *Tree) TypeDecls() []NodeID {
	if root := t.Get(t.Root); root != nil {
		return root.Members
	}
	return nil
}

// Add allocates n and makes it the parent of every child it references.
// Children must be added before their parent.
func (t *Tree) Add(n Node) NodeID {
	id := NodeID(t.Nodes.Allocate(n))
	t.Adopt(id, t.Children(id)...)
	return id
}
