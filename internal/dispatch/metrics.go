package dispatch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes dispatcher counters. A nil *Metrics records nothing.
type Metrics struct {
	cycles     prometheus.Counter
	recomputes *prometheus.CounterVec
	faults     *prometheus.CounterVec
	duration   prometheus.Histogram
}

// NewMetrics creates the dispatcher metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nutridash",
			Subsystem: "dispatch",
			Name:      "cycles_total",
			Help:      "Input snapshots processed",
		}),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutridash",
			Subsystem: "dispatch",
			Name:      "recomputes_total",
			Help:      "Generator invocations per output",
		}, []string{"output"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutridash",
			Subsystem: "dispatch",
			Name:      "faults_total",
			Help:      "Generator faults per output",
		}, []string{"output"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nutridash",
			Subsystem: "dispatch",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one dispatch cycle",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
	reg.MustRegister(m.cycles, m.recomputes, m.faults, m.duration)
	return m
}

func (m *Metrics) observeCycle(d time.Duration) {
	if m == nil {
		return
	}
	m.cycles.Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) recompute(out OutputID) {
	if m == nil {
		return
	}
	m.recomputes.WithLabelValues(string(out)).Inc()
}

func (m *Metrics) fault(out OutputID) {
	if m == nil {
		return
	}
	m.faults.WithLabelValues(string(out)).Inc()
}
