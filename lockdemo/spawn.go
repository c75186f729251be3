package lockdemo

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// PanicError is returned for a worker that panicked.
type PanicError struct {
	Worker string
	Value  interface{}
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("lockdemo: worker %s panicked: %v", e.Worker, e.Value)
}

// spawn runs fn in the group and turns a panic into a *PanicError,
// so a dead worker shows up in Wait instead of crashing the process.
func spawn(g *errgroup.Group, name string, fn func() error) {
	g.Go(func() (err error) {
		defer func() {
			if v := recover(); v != nil {
				err = &PanicError{Worker: name, Value: v, Stack: debug.Stack()}
			}
		}()
		return fn()
	})
}
