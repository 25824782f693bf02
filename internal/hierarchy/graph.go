// Package hierarchy orders the declared types of a binding table so that
// every type comes after its supertypes, and finds inheritance cycles.
package hierarchy

import (
	"slices"

	"jsema/internal/binding"
)

// Table is the part of *binding.Table the graph is built from.
type Table interface {
	TypeCount() int
	Type(id binding.TypeID) *binding.TypeInfo
}

// Graph has one edge per supertype link, pointing from supertype to subtype.
type Graph struct {
	Edges   [][]binding.TypeID // Edges[super] = []sub
	Indeg   []int              // число разрешённых супертипов
	Present []bool             // узел участвует в сортировке
}

// Build collects declared types. With sourceOnly, prelude types are left out
// and edges from them are ignored.
func Build(t Table, sourceOnly bool) Graph {
	n := t.TypeCount() + 1
	g := Graph{
		Edges:   make([][]binding.TypeID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
	}
	for i := 1; i < n; i++ {
		ti := t.Type(binding.TypeID(i))
		if ti == nil || !ti.Kind.IsDeclared() {
			continue
		}
		if sourceOnly && !ti.Decl.IsValid() {
			continue
		}
		g.Present[i] = true
	}
	for i := 1; i < n; i++ {
		if !g.Present[i] {
			continue
		}
		ti := t.Type(binding.TypeID(i))
		supers := make([]binding.TypeID, 0, 1+len(ti.Interfaces))
		if ti.Superclass.IsValid() {
			supers = append(supers, ti.Superclass)
		}
		supers = append(supers, ti.Interfaces...)
		slices.Sort(supers)
		supers = slices.Compact(supers)
		for _, s := range supers {
			if int(s) >= n || !g.Present[s] {
				continue
			}
			g.Edges[s] = append(g.Edges[s], binding.TypeID(i))
			g.Indeg[i]++
		}
	}
	return g
}
