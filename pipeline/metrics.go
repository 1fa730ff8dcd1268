package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for materialization runs.
type Metrics struct {
	RowsProcessed   *prometheus.CounterVec
	StatementsAdded prometheus.Counter
	StubsCreated    prometheus.Counter
	Warnings        prometheus.Counter
	ExportBytes     *prometheus.GaugeVec
}

// NewMetrics creates and registers the run collectors. Pass
// prometheus.DefaultRegisterer outside of tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RowsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relgraph",
			Name:      "rows_processed_total",
			Help:      "Source rows processed, by table.",
		}, []string{"table"}),
		StatementsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relgraph",
			Name:      "statements_added_total",
			Help:      "Statements added to the graph store.",
		}),
		StubsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relgraph",
			Name:      "stub_entities_total",
			Help:      "Stub entities synthesized by the repair pass.",
		}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relgraph",
			Name:      "warnings_total",
			Help:      "Row-level and referential-gap warnings collected.",
		}),
		ExportBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "relgraph",
			Name:      "export_bytes",
			Help:      "Serialized output size of the last run, by format.",
		}, []string{"format"}),
	}

	collectors := []prometheus.Collector{
		m.RowsProcessed, m.StatementsAdded, m.StubsCreated, m.Warnings, m.ExportBytes,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
