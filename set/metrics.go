package set

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts tree activity. A nil *Metrics records nothing, which is
// what sets built without WithMetrics carry.
type Metrics struct {
	inserts   *prometheus.CounterVec
	removals  prometheus.Counter
	rotations *prometheus.CounterVec
	fixups    *prometheus.CounterVec
	absorbs   prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		inserts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserts_total",
			Help:      "Insert calls, by whether the value was new or a duplicate",
		}, []string{"result"}),
		removals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removals_total",
			Help:      "Nodes unlinked from a tree",
		}),
		rotations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rotations_total",
			Help:      "Single rotations performed while rebalancing",
		}, []string{"direction"}),
		fixups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixups_total",
			Help:      "Rebalancing cases taken after insert or delete",
		}, []string{"kind"}),
		absorbs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repack_absorbed_total",
			Help:      "Elements merged into a neighbour by repack",
		}),
	}
}

func (m *Metrics) inserted(added bool) {
	if m == nil {
		return
	}

	if added {
		m.inserts.WithLabelValues("inserted").Inc()
	} else {
		m.inserts.WithLabelValues("duplicate").Inc()
	}
}

func (m *Metrics) removed() {
	if m != nil {
		m.removals.Inc()
	}
}

func (m *Metrics) rotated(direction string) {
	if m != nil {
		m.rotations.WithLabelValues(direction).Inc()
	}
}

func (m *Metrics) fixup(kind string) {
	if m != nil {
		m.fixups.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) absorbed(n int) {
	if m != nil && n > 0 {
		m.absorbs.Add(float64(n))
	}
}
