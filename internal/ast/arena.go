package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores values in a compact slice; indexes are 1-based so that 0 can
// act as the "no node" sentinel.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose storage is preallocated with capHint slots.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast arena overflow: %w", err))
	}
	return n
}

// Get returns a pointer to the value at index, or nil for the sentinel.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the storage. READONLY.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Len reports the number of allocated values.
func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
