package symbols

// lazy is a write-once cell. The first get runs compute and stores the
// result; later calls return the stored value. Not safe for concurrent use:
// a symbol is owned by exactly one Sema.
type lazy[T any] struct {
	value T
	done  bool
}

func (l *lazy[T]) get(compute func() T) T {
	if !l.done {
		l.value = compute()
		l.done = true
	}
	return l.value
}

// ready reports whether the value has been computed.
func (l *lazy[T]) ready() bool { return l.done }
