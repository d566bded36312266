package delaunay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	insertions    prometheus.Counter
	deletions     prometheus.Counter
	cavitySize    prometheus.Histogram
	conflictEdges prometheus.Gauge
	errors        *prometheus.CounterVec
}

// newMetrics creates the collectors. A nil registerer leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		insertions: factory.NewCounter(prometheus.CounterOpts{
			Name: "delaunay_insertions_total",
			Help: "Total number of vertices inserted",
		}),
		deletions: factory.NewCounter(prometheus.CounterOpts{
			Name: "delaunay_deletions_total",
			Help: "Total number of vertices deleted",
		}),
		cavitySize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "delaunay_cavity_triangles",
			Help:    "Number of triangles retired by a single insertion or deletion",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 32, 64},
		}),
		conflictEdges: factory.NewGauge(prometheus.GaugeOpts{
			Name: "delaunay_conflict_edges",
			Help: "Current number of edges in the conflict graph",
		}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "delaunay_errors_total",
			Help: "Number of failed operations by error kind",
		}, []string{"kind"}),
	}
}

func (m *metrics) fail(err error) error {
	if err != nil {
		m.errors.WithLabelValues(errorKind(err)).Inc()
	}
	return err
}
