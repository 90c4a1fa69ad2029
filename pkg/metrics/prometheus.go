package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	sourceResults *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intelpull_cache_hits_total",
				Help: "Total number of response cache hits",
			},
			[]string{"category"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intelpull_cache_misses_total",
				Help: "Total number of response cache misses",
			},
			[]string{"category"},
		),
		sourceResults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intelpull_source_results_total",
				Help: "Per-source fetch outcomes",
			},
			[]string{"source", "outcome"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intelpull_fallbacks_total",
				Help: "Fallback resolutions by category and kind",
			},
			[]string{"category", "kind"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "intelpull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCacheHit records a response cache hit.
func (r *Recorder) RecordCacheHit(category string) {
	r.cacheHits.WithLabelValues(category).Inc()
}

// RecordCacheMiss records a response cache miss.
func (r *Recorder) RecordCacheMiss(category string) {
	r.cacheMisses.WithLabelValues(category).Inc()
}

// RecordSourceResult records a per-source fetch outcome.
func (r *Recorder) RecordSourceResult(source, outcome string) {
	r.sourceResults.WithLabelValues(source, outcome).Inc()
}

// RecordFallback records a fallback resolution.
func (r *Recorder) RecordFallback(category, kind string) {
	r.fallbacks.WithLabelValues(category, kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
