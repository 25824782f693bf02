package ast

// NodeID identifies a node inside a Tree's arena.
type NodeID uint32

// NoNodeID marks an absent child.
const NoNodeID NodeID = 0

// IsValid reports whether the id refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }
