// Package metrics exports simulation counters to Prometheus.
//
package metrics

import (
	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gatesim"

// Collector counts simulation events. It implements gatesim.Observer.
//
type Collector struct {
	changes     prometheus.Counter
	wiring      *prometheus.CounterVec
	diagnostics prometheus.Counter
	terminals   prometheus.Gauge
	circuits    prometheus.Gauge
}

// New creates a Collector and registers its metrics with reg.
//
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		changes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "value_changes_total",
			Help:      "Number of terminal value changes.",
		}),
		wiring: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wiring_operations_total",
			Help:      "Number of wiring and naming operations by kind.",
		}, []string{"op"}),
		diagnostics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Number of aborted propagations.",
		}),
		terminals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "terminals",
			Help:      "Number of live terminals.",
		}),
		circuits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuits",
			Help:      "Number of live circuits.",
		}),
	}
	for _, m := range []prometheus.Collector{c.changes, c.wiring, c.diagnostics, c.terminals, c.circuits} {
		if err := reg.Register(m); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
	}
	return c, nil
}

// Observe implements gatesim.Observer.
//
func (c *Collector) Observe(e *gatesim.Event) {
	switch e.Kind {
	case gatesim.ValueChanged:
		c.changes.Inc()
	case gatesim.Diagnostic:
		c.diagnostics.Inc()
	default:
		c.wiring.WithLabelValues(e.Kind.String()).Inc()
	}
}

// Update sets the size gauges from s. Like any other access to s, it must
// not run concurrently with other uses of s.
//
func (c *Collector) Update(s *gatesim.Sim) {
	c.terminals.Set(float64(s.Terminals()))
	c.circuits.Set(float64(s.Circuits()))
}
