package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records storage query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StorageErrors counts storage failures by operation and kind (conflict, fault).
	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_storage_errors_total",
		Help: "Total number of storage errors by operation and kind",
	}, []string{"operation", "kind"})

	// ContentTransforms counts content pipeline steps that changed or derived a field.
	ContentTransforms = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_content_transforms_total",
		Help: "Total number of content pipeline transforms by step",
	}, []string{"step"})

	// PostWrites counts post mutations by operation and outcome.
	PostWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_post_writes_total",
		Help: "Total number of post writes by operation and outcome",
	}, []string{"operation", "outcome"})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordTransform increments the counter for a content pipeline step.
func RecordTransform(step string) {
	ContentTransforms.WithLabelValues(step).Inc()
}

// RecordPostWrite increments the post write counter.
func RecordPostWrite(operation, outcome string) {
	PostWrites.WithLabelValues(operation, outcome).Inc()
}
