package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores values in a slice and hands out their index as ID.
type Arena[ID id, T any] struct {
	data []T
	name string
}

// NewArena creates an arena with optional capacity hint.
func NewArena[ID id, T any](name string, capacity uint32) *Arena[ID, T] {
	if capacity == 0 {
		capacity = 16
	}
	return &Arena[ID, T]{
		data: make([]T, 1, capacity+1), // index 0 reserved for the invalid ID
		name: name,
	}
}

// New appends v and returns its ID.
func (a *Arena[ID, T]) New(v T) ID {
	value, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", a.name, err))
	}
	a.data = append(a.data, v)
	return ID(value)
}

// Get returns a pointer to the stored value or nil for an invalid ID.
func (a *Arena[ID, T]) Get(id ID) *T {
	if id == 0 || int(id) >= len(a.data) {
		return nil
	}
	return &a.data[id]
}

// Len reports the number of stored values excluding the sentinel.
func (a *Arena[ID, T]) Len() int { return len(a.data) - 1 }

// IDs returns every valid ID in allocation order.
func (a *Arena[ID, T]) IDs() []ID {
	out := make([]ID, 0, a.Len())
	for i := 1; i < len(a.data); i++ {
		out = append(out, ID(i)) //nolint:gosec // bounded by New
	}
	return out
}
