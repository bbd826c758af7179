package eventstore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics of event stores, shared by every store of a process
type Metrics struct {
	appends  *prometheus.CounterVec
	events   prometheus.Counter
	lockWait prometheus.Histogram
}

// NewMetrics registers the collectors to reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		appends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventstore",
			Name:      "appends_total",
			Help:      "Number of append calls by result",
		}, []string{"result"}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventstore",
			Name:      "appended_events_total",
			Help:      "Number of successfully appended events",
		}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "eventstore",
			Name:      "write_lock_wait_seconds",
			Help:      "Time spent acquiring write locks",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
	reg.MustRegister(m.appends, m.events, m.lockWait)
	return m
}

func (m *Metrics) observeAppend(err error, numEvents int) {
	if m == nil {
		return
	}
	m.appends.WithLabelValues(errorKind(err)).Inc()
	if err == nil {
		m.events.Add(float64(numEvents))
	}
}

func (m *Metrics) observeLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.Observe(d.Seconds())
}
