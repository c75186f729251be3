package lockdemo

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ModeExclusive = "exclusive"
	ModeRead      = "read"
	ModeWrite     = "write"
)

// Metrics collects lock contention statistics for the demos.
type Metrics struct {
	lockWait     *prometheus.HistogramVec
	acquisitions *prometheus.CounterVec
	runs         *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them in reg, if reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lockdemo",
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting to enter a critical section.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"demo", "mode"}),
		acquisitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lockdemo",
			Name:      "lock_acquisitions_total",
			Help:      "Number of critical sections entered.",
		}, []string{"demo", "mode"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lockdemo",
			Name:      "runs_total",
			Help:      "Number of demo runs by outcome.",
		}, []string{"demo", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.lockWait, m.acquisitions, m.runs)
	}
	return m
}

func (m *Metrics) observeRun(demo string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.runs.WithLabelValues(demo, outcome).Inc()
}

// probe measures how long an actor waited for the lock.
// A nil probe records nothing.
type probe struct {
	clock   clockwork.Clock
	metrics *Metrics
	demo    string
	mode    string
}

func (p *probe) begin() time.Time {
	if p == nil {
		return time.Time{}
	}
	return p.clock.Now()
}

// acquired must be called from inside the critical section.
func (p *probe) acquired(start time.Time) {
	if p == nil {
		return
	}
	p.metrics.lockWait.WithLabelValues(p.demo, p.mode).Observe(p.clock.Since(start).Seconds())
	p.metrics.acquisitions.WithLabelValues(p.demo, p.mode).Inc()
}
