package symbols

// orderedSet keeps first-insertion order and drops repeated elements.
type orderedSet[T comparable] struct {
	items []T
	seen  map[T]struct{}
}

func newOrderedSet[T comparable]() *orderedSet[T] {
	return &orderedSet[T]{seen: make(map[T]struct{})}
}

// add reports whether v was new.
func (s *orderedSet[T]) add(v T) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet[T]) len() int { return len(s.items) }

func (s *orderedSet[T]) slice() []T { return s.items }
