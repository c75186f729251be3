// Package lockdemo contrasts an exclusive lock with a reader/writer lock on a
// shared integer.
//
// The counter demo shows that a mutex loses no updates; the read/write demo
// lets readers share the lock while a single writer increments the value.
package lockdemo

import (
	"os"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	DemoCounter            = "counter"
	DemoReadWrite          = "readwrite"
	DemoReadWriteExclusive = "readwrite-exclusive"
)

// Report summarizes one demo run.
type Report struct {
	RunID   string
	Demo    string
	Final   int
	Reads   int
	Writes  int
	Elapsed time.Duration
}

// Runner runs the demos and carries their logger, clock, observer and metrics.
type Runner struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	observer Observer
	metrics  *Metrics
	newID    func() (uuid.UUID, error)
}

type Option func(*Runner)

func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

func WithClock(c clockwork.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a Runner printing observations to stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:   zap.NewNop(),
		clock:    clockwork.NewRealClock(),
		observer: NewLineObserver(os.Stdout),
		newID:    uuid.NewV4,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(nil)
	}
	return r
}

func (r *Runner) probe(demo, mode string) *probe {
	return &probe{clock: r.clock, metrics: r.metrics, demo: demo, mode: mode}
}

// start opens a run: assigns an id, logs it and returns the function that
// closes it.
func (r *Runner) start(demo string) (*Report, *zap.Logger, func(err error)) {
	rep := &Report{Demo: demo}
	id, err := r.newID()
	if err == nil {
		rep.RunID = id.String()
	}

	log := r.logger.With(zap.String("run_id", rep.RunID), zap.String("demo", demo))
	if err != nil {
		log.Warn("failed to generate run id", zap.Error(err))
	}
	log.Info("demo started")
	begin := r.clock.Now()

	return rep, log, func(err error) {
		rep.Elapsed = r.clock.Since(begin)
		r.metrics.observeRun(demo, err)
		if err != nil {
			log.Error("demo failed", zap.Error(err), zap.Duration("elapsed", rep.Elapsed))
			return
		}
		log.Info("demo finished",
			zap.Int("final", rep.Final),
			zap.Int("reads", rep.Reads),
			zap.Int("writes", rep.Writes),
			zap.Duration("elapsed", rep.Elapsed),
		)
	}
}
