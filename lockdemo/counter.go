package lockdemo

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"gitlab.com/slon/lockdemo/poisonlock"
	"gitlab.com/slon/lockdemo/refcount"
)

// NewSharedCounter creates the first owner of a counter starting at v.
// Every actor sharing the counter holds its own clone of the handle.
// onRelease, if not nil, runs once the last owner is released.
func NewSharedCounter[T constraints.Integer](v T, onRelease func(*poisonlock.Mutex[T])) *refcount.Handle[*poisonlock.Mutex[T]] {
	return refcount.New(poisonlock.NewMutex(v), onRelease)
}

// IncrementNTimes adds 1 to the counter n times, taking the lock separately
// for every increment so that other actors can interleave.
func IncrementNTimes[T constraints.Integer](h *refcount.Handle[*poisonlock.Mutex[T]], n int) error {
	return incrementNTimes(h, n, nil)
}

func incrementNTimes[T constraints.Integer](h *refcount.Handle[*poisonlock.Mutex[T]], n int, p *probe) error {
	m := h.Get()
	for i := 0; i < n; i++ {
		start := p.begin()
		err := m.Do(func(v *T) {
			p.acquired(start)
			*v++
		})
		if err != nil {
			return fmt.Errorf("increment %d of %d: %w", i+1, n, err)
		}
	}
	return nil
}

// RunCounter spawns one worker and increments the counter concurrently from
// the calling goroutine, cfg.Increments times each. On success the final value
// is cfg.Initial + 2*cfg.Increments.
func (r *Runner) RunCounter(cfg CounterConfig) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	rep, log, finish := r.start(DemoCounter)
	p := r.probe(DemoCounter, ModeExclusive)

	counter := NewSharedCounter(cfg.Initial, func(*poisonlock.Mutex[int]) {
		log.Debug("counter released")
	})

	var g errgroup.Group
	worker := counter.Clone()
	spawn(&g, "counter", func() error {
		defer worker.Release()
		return incrementNTimes(worker, cfg.Increments, p)
	})
	joined := false
	// если вызывающая горутина паникует, воркер всё равно дожидаемся:
	// лок отравлен, и воркер выйдет с ErrPoisoned
	defer func() {
		if !joined {
			_ = g.Wait()
		}
	}()

	err := incrementNTimes(counter, cfg.Increments, p)
	// воркер дожидаемся даже после ошибки, чтобы не оставлять горутину
	joined = true
	err = multierr.Append(err, g.Wait())

	if err == nil {
		rep.Final, err = counter.Get().Get()
		rep.Writes = 2 * cfg.Increments
	}
	counter.Release()

	finish(err)
	if err != nil {
		return *rep, fmt.Errorf("counter demo: %w", err)
	}

	r.observer.ObserveFinal(rep.Final)
	log.Debug("final value", zap.Int("value", rep.Final))
	return *rep, nil
}
