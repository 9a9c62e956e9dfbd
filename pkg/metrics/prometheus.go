// Package metrics provides Prometheus metrics for the HireSight
// candidate intelligence service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the HireSight service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Ingest metrics
	batchesIngested    prometheus.Counter
	candidatesScored   prometheus.Counter
	candidatesSkipped  prometheus.Counter
	duplicatesDetected prometheus.Counter
	ingestLatency      prometheus.Histogram
	scoringLatency     prometheus.Histogram

	// Pool health
	poolSize        prometheus.Gauge
	poolLastReplace prometheus.Gauge

	// Analytics metrics
	queryLatency     prometheus.Histogram
	aggregateLatency prometheus.Histogram
	teamLatency      prometheus.Histogram
	statsCacheHits   prometheus.Counter
	statsCacheMisses prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	ingestErrors         prometheus.Counter
	queryErrors          prometheus.Counter
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hiresight",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Register metrics on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.batchesIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_ingested_total",
		Help:      "Total number of candidate batches ingested",
	})

	m.candidatesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_scored_total",
		Help:      "Total number of candidates normalized and scored",
	})

	m.candidatesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_skipped_total",
		Help:      "Total number of candidate records skipped during ingest",
	})

	m.duplicatesDetected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_detected_total",
		Help:      "Total number of duplicate submissions detected (data quality indicator)",
	})

	m.ingestLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_latency_milliseconds",
		Help:      "Histogram of batch ingest latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of per-candidate scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.poolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_size",
		Help:      "Current number of candidates in the scored pool",
	})

	m.poolLastReplace = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_last_replace_unix",
		Help:      "Unix timestamp of the last candidate pool replacement",
	})

	m.queryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_latency_milliseconds",
		Help:      "Candidate filter query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.aggregateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregate_latency_milliseconds",
		Help:      "Market analytics computation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.teamLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "team_latency_milliseconds",
		Help:      "Team composition latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.statsCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stats_cache_hits_total",
		Help:      "Total number of analytics cache hits",
	})

	m.statsCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stats_cache_misses_total",
		Help:      "Total number of analytics cache misses",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.ingestErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_errors_total",
		Help:      "Total number of ingest errors",
	})

	m.queryErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_errors_total",
		Help:      "Total number of query validation or evaluation errors",
	})

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)
}

// RecordBatchIngested increments the ingested batches counter.
func RecordBatchIngested() {
	globalManager.batchesIngested.Inc()
}

// RecordCandidateScored increments the scored candidates counter.
func RecordCandidateScored() {
	globalManager.candidatesScored.Inc()
}

// RecordCandidateSkipped increments the skipped candidates counter.
func RecordCandidateSkipped() {
	globalManager.candidatesSkipped.Inc()
}

// RecordDuplicateDetected increments the duplicate submissions counter.
func RecordDuplicateDetected() {
	globalManager.duplicatesDetected.Inc()
}

// RecordIngestLatency records batch ingest latency in milliseconds.
func RecordIngestLatency(latencyMs float64) {
	globalManager.ingestLatency.Observe(latencyMs)
}

// RecordScoringLatency records per-candidate scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// UpdatePoolSize sets the current scored pool size.
func UpdatePoolSize(size int) {
	globalManager.poolSize.Set(float64(size))
}

// RecordPoolReplaced marks a pool replacement at the current time.
func RecordPoolReplaced() {
	globalManager.poolLastReplace.Set(float64(time.Now().Unix()))
}

// RecordQueryLatency records filter query latency in milliseconds.
func RecordQueryLatency(latencyMs float64) {
	globalManager.queryLatency.Observe(latencyMs)
}

// RecordAggregateLatency records analytics computation latency in milliseconds.
func RecordAggregateLatency(latencyMs float64) {
	globalManager.aggregateLatency.Observe(latencyMs)
}

// RecordTeamLatency records team composition latency in milliseconds.
func RecordTeamLatency(latencyMs float64) {
	globalManager.teamLatency.Observe(latencyMs)
}

// RecordStatsCacheHit increments the analytics cache hit counter.
func RecordStatsCacheHit() {
	globalManager.statsCacheHits.Inc()
}

// RecordStatsCacheMiss increments the analytics cache miss counter.
func RecordStatsCacheMiss() {
	globalManager.statsCacheMisses.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordIngestError increments the ingest errors counter.
func RecordIngestError() {
	globalManager.ingestErrors.Inc()
}

// RecordQueryError increments the query errors counter.
func RecordQueryError() {
	globalManager.queryErrors.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
