package lockdemo

import (
	"fmt"
	"io"
	"sync"
)

//go:generate mockgen -source=observer.go -destination=observer_mock_test.go -package=lockdemo

// Observer receives the values seen inside critical sections.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveRead(v int)
	ObserveWrite(v int)
	ObserveFinal(v int)
}

// LineObserver prints one line per observation.
type LineObserver struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLineObserver(w io.Writer) *LineObserver {
	return &LineObserver{w: w}
}

func (o *LineObserver) ObserveRead(v int) {
	o.printf("Read value as %d\n", v)
}

func (o *LineObserver) ObserveWrite(v int) {
	o.printf("Incremented value by 1 to %d\n", v)
}

func (o *LineObserver) ObserveFinal(v int) {
	o.printf("%d\n", v)
}

func (o *LineObserver) printf(format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintf(o.w, format, args...)
}

type nopObserver struct{}

func (nopObserver) ObserveRead(int)  {}
func (nopObserver) ObserveWrite(int) {}
func (nopObserver) ObserveFinal(int) {}
