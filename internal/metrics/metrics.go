// Package metrics defines the Prometheus instrumentation for the helpdesk API.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// GenerationRequestsTotal counts text-generation calls by operation and status.
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helpdesk",
			Name:      "generation_requests_total",
			Help:      "Total number of text generation requests",
		},
		[]string{"model", "operation", "status"},
	)

	// GenerationRequestDuration observes text-generation latency.
	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "helpdesk",
			Name:      "generation_request_duration_seconds",
			Help:      "Text generation request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model", "operation"},
	)

	// EmbeddingRequestsTotal counts embedding calls by status.
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helpdesk",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	// EmbeddingRequestDuration observes embedding latency.
	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "helpdesk",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	// ComplaintsStoredTotal counts complaints persisted in the vector store.
	ComplaintsStoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "helpdesk",
			Name:      "complaints_stored_total",
			Help:      "Total number of complaints stored",
		},
	)

	// SearchesTotal counts similarity searches by kind (similar / enhanced).
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helpdesk",
			Name:      "searches_total",
			Help:      "Total number of similarity searches",
		},
		[]string{"kind"},
	)
)

// Register registers all application metrics explicitly (no init()).
func Register() {
	prometheus.MustRegister(
		GenerationRequestsTotal,
		GenerationRequestDuration,
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		ComplaintsStoredTotal,
		SearchesTotal,
	)
}
