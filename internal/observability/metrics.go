package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for incident aggregation and the resource directory.
type Metrics struct {
	// labels: category, outcome={success,error,missing}
	SourceFetches *prometheus.CounterVec
	// labels: scope={aggregate,category,resources,campaigns}
	Fallbacks          *prometheus.CounterVec
	AggregateDuration  prometheus.Histogram
	IncidentsPerSource *prometheus.GaugeVec // labels: category
	Submissions        *prometheus.CounterVec // labels: kind, outcome={success,error,invalid}
	SnapshotsPublished prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SourceFetches,
		m.Fallbacks,
		m.AggregateDuration,
		m.IncidentsPerSource,
		m.Submissions,
		m.SnapshotsPublished,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "source_fetches_total",
			Help:      "Incident source fetches by category and outcome.",
		}, []string{"category", "outcome"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "fixture_fallbacks_total",
			Help:      "Times fixture data replaced live data, by scope.",
		}, []string{"scope"}),
		AggregateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_map",
			Name:      "aggregate_duration_seconds",
			Help:      "Duration of a full five-category aggregation.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		IncidentsPerSource: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "incident_map",
			Name:      "incidents",
			Help:      "Incidents in the most recent polled aggregation, by category.",
		}, []string{"category"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "submissions_total",
			Help:      "User submissions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "snapshots_published_total",
			Help:      "Incident snapshots published to the broker.",
		}),
	}
}
