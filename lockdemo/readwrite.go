package lockdemo

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"gitlab.com/slon/lockdemo/poisonlock"
	"gitlab.com/slon/lockdemo/refcount"
)

// cell is the integer shared by the read/write demo.
type cell interface {
	read(fn func(v int)) error
	write(fn func(v *int)) error
}

type rwCell struct {
	rw *poisonlock.RWMutex[int]
}

func (c rwCell) read(fn func(v int)) error   { return c.rw.Read(fn) }
func (c rwCell) write(fn func(v *int)) error { return c.rw.Write(fn) }

// exclusiveCell serializes readers too.
type exclusiveCell struct {
	m *poisonlock.Mutex[int]
}

func (c exclusiveCell) read(fn func(v int)) error {
	return c.m.Do(func(v *int) { fn(*v) })
}

func (c exclusiveCell) write(fn func(v *int)) error { return c.m.Do(fn) }

// RunReadWrite spawns cfg.Readers readers doing cfg.Reads reads each while
// the calling goroutine performs cfg.Writes increments. It returns after all
// readers have finished.
//
// Readers may hold the lock together; a writer holds it alone. With
// cfg.Exclusive the same workload runs over a mutex for comparison.
func (r *Runner) RunReadWrite(cfg ReadWriteConfig) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	demo := DemoReadWrite
	readMode, writeMode := ModeRead, ModeWrite
	var c cell = rwCell{rw: poisonlock.NewRWMutex(0)}
	if cfg.Exclusive {
		demo = DemoReadWriteExclusive
		readMode, writeMode = ModeExclusive, ModeExclusive
		c = exclusiveCell{m: poisonlock.NewMutex(0)}
	}

	rep, log, finish := r.start(demo)
	rp, wp := r.probe(demo, readMode), r.probe(demo, writeMode)

	shared := refcount.New(c, func(cell) {
		log.Debug("cell released")
	})

	var (
		g     errgroup.Group
		reads atomic.Int64
	)
	for i := 0; i < cfg.Readers; i++ {
		reader := shared.Clone()
		spawn(&g, fmt.Sprintf("reader-%d", i), func() error {
			defer reader.Release()
			rc := reader.Get()
			for j := 0; j < cfg.Reads; j++ {
				start := rp.begin()
				err := rc.read(func(v int) {
					rp.acquired(start)
					r.observer.ObserveRead(v)
				})
				if err != nil {
					return fmt.Errorf("reader %d, read %d of %d: %w", i, j+1, cfg.Reads, err)
				}
				reads.Add(1)
			}
			return nil
		})
	}

	joined := false
	// паника писателя отравляет лок, читатели выходят с ErrPoisoned
	defer func() {
		if !joined {
			_ = g.Wait()
		}
	}()

	var err error
	for j := 0; j < cfg.Writes; j++ {
		start := wp.begin()
		werr := shared.Get().write(func(v *int) {
			wp.acquired(start)
			*v++
			r.observer.ObserveWrite(*v)
		})
		if werr != nil {
			err = fmt.Errorf("write %d of %d: %w", j+1, cfg.Writes, werr)
			break
		}
		rep.Writes++
	}

	joined = true
	err = multierr.Append(err, g.Wait())
	rep.Reads = int(reads.Load())
	if err == nil {
		err = shared.Get().read(func(v int) {
			rep.Final = v
		})
	}
	shared.Release()

	finish(err)
	if err != nil {
		return *rep, fmt.Errorf("read/write demo: %w", err)
	}
	return *rep, nil
}
