package poisonlock

import "sync/atomic"

// RWMutex is a reader/writer lock guarding a value of type T.
// Any number of readers or a single writer may hold it.
//
// Both readers and writers pass through a service queue on entry, so once a
// writer is waiting no new reader can overtake it.
//
// Only write sections poison the lock: a reader cannot modify the value, so an
// aborted read leaves it consistent.
type RWMutex[T any] struct {
	queue    chan struct{}
	w        chan struct{}
	r        chan struct{}
	readers  int
	poisoned atomic.Bool
	value    T
}

// NewRWMutex creates an unlocked RWMutex holding v.
func NewRWMutex[T any](v T) *RWMutex[T] {
	rw := &RWMutex[T]{
		queue: make(chan struct{}, 1),
		w:     make(chan struct{}, 1),
		r:     make(chan struct{}, 1),
		value: v,
	}
	rw.queue <- struct{}{}
	rw.w <- struct{}{}
	rw.r <- struct{}{}
	return rw
}

func (rw *RWMutex[T]) rlock() {
	<-rw.queue
	<-rw.r
	// первый читатель забирает токен писателя
	if rw.readers == 0 {
		<-rw.w
	}
	rw.readers++
	rw.r <- struct{}{}
	rw.queue <- struct{}{}
}

func (rw *RWMutex[T]) runlock() {
	<-rw.r
	rw.readers--
	// последний читатель возвращает токен писателя
	if rw.readers == 0 {
		rw.w <- struct{}{}
	}
	rw.r <- struct{}{}
}

func (rw *RWMutex[T]) lock() {
	<-rw.queue
	<-rw.w
	rw.queue <- struct{}{}
}

func (rw *RWMutex[T]) unlock() {
	rw.w <- struct{}{}
}

// Read runs fn with shared access to a copy of the guarded value.
// It returns ErrPoisoned without calling fn if the lock is poisoned.
func (rw *RWMutex[T]) Read(fn func(v T)) error {
	rw.rlock()
	defer rw.runlock()

	if rw.poisoned.Load() {
		return ErrPoisoned
	}
	fn(rw.value)
	return nil
}

// Write runs fn with exclusive access to the guarded value.
// It returns ErrPoisoned without calling fn if the lock is poisoned, and
// poisons the lock if fn does not return normally.
func (rw *RWMutex[T]) Write(fn func(v *T)) error {
	rw.lock()
	if rw.poisoned.Load() {
		rw.unlock()
		return ErrPoisoned
	}

	completed := false
	defer func() {
		if !completed {
			rw.poisoned.Store(true)
		}
		rw.unlock()
	}()

	fn(&rw.value)
	completed = true
	return nil
}

// Get returns a copy of the guarded value under a read lock.
func (rw *RWMutex[T]) Get() (T, error) {
	var out T
	err := rw.Read(func(v T) {
		out = v
	})
	return out, err
}

// IsPoisoned reports whether a write section was aborted.
func (rw *RWMutex[T]) IsPoisoned() bool {
	return rw.poisoned.Load()
}

// ClearPoison marks the lock usable again.
func (rw *RWMutex[T]) ClearPoison() {
	rw.poisoned.Store(false)
}
