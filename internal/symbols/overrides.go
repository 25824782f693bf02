package symbols

import (
	"jsema/internal/binding"
)

// overrideWalk collects the methods m overrides by walking superclass and
// interface edges depth-first. Interfaces also visit java.lang.Object.
// Each type is expanded at most once per walk, so cyclic hierarchies from
// broken code terminate.
type overrideWalk struct {
	o        binding.Oracle
	m        binding.MethodID
	object   binding.TypeID
	expanded *orderedSet[binding.TypeID]
	result   *orderedSet[binding.MethodID]
}

func (s *Sema) findOverrides(m binding.MethodID) []*MethodSymbol {
	w := &overrideWalk{
		o:        s.oracle,
		m:        m,
		object:   s.oracle.Lookup(binding.ObjectName),
		expanded: newOrderedSet[binding.TypeID](),
		result:   newOrderedSet[binding.MethodID](),
	}
	w.findOverrides(s.oracle.DeclaringType(m))
	s.stats.OverrideWalks++
	s.stats.TypesExpanded += w.expanded.len()

	if w.result.len() == 0 {
		return nil
	}
	out := make([]*MethodSymbol, 0, w.result.len())
	for _, id := range w.result.slice() {
		out = append(out, s.Method(id))
	}
	return out
}

func (w *overrideWalk) findOverrides(t binding.TypeID) {
	if !t.IsValid() || !w.expanded.add(t) {
		return
	}
	switch {
	case w.o.IsInterface(t):
		w.findInSupertypes([]binding.TypeID{w.object})
	case t != w.object:
		w.findInSupertypes([]binding.TypeID{w.o.Superclass(t)})
	}
	w.findInSupertypes(w.o.Interfaces(t))
}

func (w *overrideWalk) findInSupertypes(ts []binding.TypeID) {
	for _, t := range ts {
		if !t.IsValid() {
			continue
		}
		for _, c := range w.o.DeclaredMethods(t) {
			if w.o.Overrides(w.m, c) {
				w.result.add(c)
				break
			}
		}
		w.findOverrides(t)
	}
}
