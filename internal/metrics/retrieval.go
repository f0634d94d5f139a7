package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and generation metrics. Registered explicitly from the
// composition root (no init()) so embedded library users keep a clean
// default registry.
var (
	DocumentsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tapssp",
		Name:      "documents_total",
		Help:      "Number of passages in the index",
	})

	VocabularySize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tapssp",
		Name:      "vocabulary_size",
		Help:      "Number of distinct terms in the vocabulary",
	})

	IngestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tapssp",
		Name:      "ingest_total",
		Help:      "Total ingestion attempts",
	}, []string{"status"})

	IngestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tapssp",
		Name:      "ingest_duration_seconds",
		Help:      "Passage ingestion duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	SearchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tapssp",
		Name:      "search_total",
		Help:      "Total search requests",
	}, []string{"status"})

	SearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tapssp",
		Name:      "search_duration_seconds",
		Help:      "Search duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	GenerationRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tapssp",
		Name:      "generation_requests_total",
		Help:      "Total generation provider requests",
	}, []string{"model", "status"})

	GenerationRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tapssp",
		Name:      "generation_request_duration_seconds",
		Help:      "Generation provider request duration in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"model"})
)

// RegisterRetrievalMetrics registers retrieval and generation collectors
// with the default registry. Safe to call once from main.
func RegisterRetrievalMetrics() {
	prometheus.MustRegister(
		DocumentsTotal,
		VocabularySize,
		IngestTotal,
		IngestDuration,
		SearchTotal,
		SearchDuration,
		GenerationRequestsTotal,
		GenerationRequestDuration,
	)
}
