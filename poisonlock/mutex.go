// Package poisonlock provides locks that own the value they guard and remember
// when a critical section did not run to completion.
//
// A critical section that panics or calls runtime.Goexit while holding the lock
// poisons it: the guarded value may be half updated, so every later acquisition
// fails with ErrPoisoned until ClearPoison is called.
package poisonlock

import "sync/atomic"

// Mutex is a mutual exclusion lock guarding a value of type T.
// The value is reachable only from inside Do.
type Mutex[T any] struct {
	// канал размера 1: токен в канале - мьютекс свободен
	token    chan struct{}
	poisoned atomic.Bool
	value    T
}

// NewMutex creates an unlocked Mutex holding v.
func NewMutex[T any](v T) *Mutex[T] {
	m := &Mutex[T]{
		token: make(chan struct{}, 1),
		value: v,
	}
	m.token <- struct{}{}
	return m
}

// Do runs fn with exclusive access to the guarded value.
//
// If the lock is poisoned, fn is not called and Do returns ErrPoisoned.
// If fn does not return normally, the lock is poisoned and released before
// the panic continues unwinding.
func (m *Mutex[T]) Do(fn func(v *T)) error {
	<-m.token
	if m.poisoned.Load() {
		m.token <- struct{}{}
		return ErrPoisoned
	}

	completed := false
	defer func() {
		if !completed {
			m.poisoned.Store(true)
		}
		m.token <- struct{}{}
	}()

	fn(&m.value)
	completed = true
	return nil
}

// Get returns a copy of the guarded value.
func (m *Mutex[T]) Get() (T, error) {
	var out T
	err := m.Do(func(v *T) {
		out = *v
	})
	return out, err
}

// IsPoisoned reports whether a critical section was aborted.
func (m *Mutex[T]) IsPoisoned() bool {
	return m.poisoned.Load()
}

// ClearPoison marks the lock usable again. The caller takes responsibility
// for the consistency of the guarded value.
func (m *Mutex[T]) ClearPoison() {
	m.poisoned.Store(false)
}
