package ast

// Children returns every child of id in source order of the role slots.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Get(id)
	if n == nil {
		return nil
	}
	out := make([]NodeID, 0, 8)
	out = append(out, n.Annotations...)
	out = append(out, n.TypeParams...)
	out = appendValid(out, n.Type, n.Superclass)
	out = append(out, n.Interfaces...)
	out = append(out, n.Params...)
	out = append(out, n.Throws...)
	out = appendValid(out, n.Object, n.Left, n.Right, n.Value)
	out = append(out, n.Args...)
	out = appendValid(out, n.Body)
	out = append(out, n.Children...)
	out = append(out, n.Members...)
	return out
}

func appendValid(out []NodeID, ids ...NodeID) []NodeID {
	for _, id := range ids {
		if id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	n := t.Get(id)
	if n == nil {
		return
	}
	if !fn(id, n) {
		return
	}
	for _, c := range t.Children(id) {
		t.Walk(c, fn)
	}
}

// Collect returns every node under root (inclusive) whose kind is one of kinds.
func (t *Tree) Collect(root NodeID, kinds ...Kind) []NodeID {
	var out []NodeID
	t.Walk(root, func(id NodeID, n *Node) bool {
		for _, k := range kinds {
			if n.Kind == k {
				out = append(out, id)
				break
			}
		}
		return true
	})
	return out
}

// Ancestor returns the closest strict ancestor of id with one of kinds.
func (t *Tree) Ancestor(id NodeID, kinds ...Kind) NodeID {
	n := t.Get(id)
	for n != nil && n.Parent.IsValid() {
		pid := n.Parent
		p := t.Get(pid)
		for _, k := range kinds {
			if p.Kind == k {
				return pid
			}
		}
		n = p
	}
	return NoNodeID
}

// EnclosingType returns the closest enclosing type declaration.
func (t *Tree) EnclosingType(id NodeID) NodeID {
	return t.Ancestor(id, KindClass, KindInterface, KindEnum, KindRecord, KindAnnotationType)
}

// HasAnnotation reports whether the declaration carries an annotation whose
// simple or qualified name is name.
func (t *Tree) HasAnnotation(id NodeID, name string) bool {
	n := t.Get(id)
	if n == nil {
		return false
	}
	for _, a := range n.Annotations {
		an := t.Get(a)
		if an == nil {
			continue
		}
		if an.Name == name || simpleName(an.Name) == name {
			return true
		}
	}
	return false
}

func simpleName(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[i+1:]
		}
	}
	return qualified
}
