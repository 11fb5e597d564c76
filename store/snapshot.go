package store

import (
	"github.com/mohae/deepcopy"
)

// Snapshot is the pre-mutation copy of a subtree, captured by a request
// transition and consumed by the matching failure transition. Each history
// field is a single slot: a second capture before the first is released
// overwrites it, so at most one compensating rollback per slice can be
// outstanding. Callers serialize concurrent mutations against the same
// slice, typically by gating on the slice's loading flag.
type Snapshot[T any] struct {
	value    T
	captured bool
}

// Capture deep-copies v so later mutations of the live subtree cannot leak
// into the snapshot.
func Capture[T any](v T) Snapshot[T] {
	return Snapshot[T]{
		value:    deepcopy.Copy(v).(T),
		captured: true,
	}
}

// Restore returns the captured subtree. The zero Snapshot restores the zero
// value of T.
func (s Snapshot[T]) Restore() T {
	return s.value
}

func (s Snapshot[T]) Captured() bool {
	return s.captured
}
