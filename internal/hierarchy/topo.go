package hierarchy

import (
	"slices"

	"jsema/internal/binding"
)

type Topo struct {
	Order   []binding.TypeID   // supertypes first
	Batches [][]binding.TypeID // волны типов с общей глубиной
	Cyclic  bool
	Cycles  []binding.TypeID // узлы, оставшиеся в цикле, и их потомки
}

// ToposortKahn orders the present nodes of g.
func ToposortKahn(g Graph) *Topo {
	nodeCount := len(g.Edges)
	indeg := slices.Clone(g.Indeg)

	topo := &Topo{Order: make([]binding.TypeID, 0, nodeCount)}

	active := 0
	current := make([]binding.TypeID, 0)
	for i := range nodeCount {
		if !g.Present[i] {
			continue
		}
		active++
		if indeg[i] == 0 {
			current = append(current, binding.TypeID(i))
		}
	}

	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]binding.TypeID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[id] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != active {
		topo.Cyclic = true
		for i := range nodeCount {
			if g.Present[i] && indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, binding.TypeID(i))
			}
		}
	}
	return topo
}

// OnCycle reports which of the leftover nodes lie on a cycle themselves,
// as opposed to merely inheriting from one.
func OnCycle(g Graph, leftover []binding.TypeID) []binding.TypeID {
	var out []binding.TypeID
	for _, start := range leftover {
		if reaches(g, start, start) {
			out = append(out, start)
		}
	}
	return out
}

func reaches(g Graph, from, target binding.TypeID) bool {
	seen := make([]bool, len(g.Edges))
	stack := slices.Clone(g.Edges[from])
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, g.Edges[id]...)
	}
	return false
}
