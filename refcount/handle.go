// Package refcount implements an atomically reference-counted owner handle.
//
// Every goroutine that shares a value holds its own Handle. The value's release
// callback runs once, when the last handle is released.
package refcount

import "sync/atomic"

type shared[T any] struct {
	refs      atomic.Int64
	value     T
	onRelease func(T)
}

// Handle is one owner of a shared value. A Handle must not be copied;
// use Clone to create another owner.
type Handle[T any] struct {
	s        *shared[T]
	released atomic.Bool
}

// New creates the first handle for v. onRelease may be nil.
func New[T any](v T, onRelease func(T)) *Handle[T] {
	s := &shared[T]{value: v, onRelease: onRelease}
	s.refs.Store(1)
	return &Handle[T]{s: s}
}

// Clone creates a new owner of the same value.
// Clone should be called before the new owner is handed to another goroutine.
func (h *Handle[T]) Clone() *Handle[T] {
	h.mustBeLive()
	h.s.refs.Add(1)
	return &Handle[T]{s: h.s}
}

// Get returns the shared value.
func (h *Handle[T]) Get() T {
	h.mustBeLive()
	return h.s.value
}

// Release drops this owner. Releasing the same handle twice is a no-op.
// It reports whether this call dropped the last owner.
func (h *Handle[T]) Release() bool {
	if !h.released.CompareAndSwap(false, true) {
		return false
	}
	if h.s.refs.Add(-1) != 0 {
		return false
	}
	if h.s.onRelease != nil {
		h.s.onRelease(h.s.value)
	}
	return true
}

// Refs returns the current number of live owners.
func (h *Handle[T]) Refs() int64 {
	return h.s.refs.Load()
}

func (h *Handle[T]) mustBeLive() {
	if h.released.Load() {
		panic("refcount: use of released handle")
	}
}
