// Package metrics provides Prometheus metrics for the Palate engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the service records.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Reputation pipeline
	statsComputations prometheus.Counter
	statsErrors       prometheus.Counter
	credibilityScores prometheus.Histogram
	experienceScores  prometheus.Histogram

	// Crowd density pipeline
	crowdEstimates      *prometheus.CounterVec
	feedbackSubmissions prometheus.Counter
	throttleRejections  prometheus.Counter

	// Store health
	storeLatency     *prometheus.HistogramVec
	malformedRecords *prometheus.CounterVec

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
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
		namespace:        "palate",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// scoreBuckets covers the realistic score range; credibility rarely
// clears 150 and experience rarely clears 200.
var scoreBuckets = []float64{0, 10, 25, 50, 75, 100, 150, 200, 300} //nolint:gochecknoglobals // shared bucket layout

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.statsComputations = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stats_computations_total",
		Help:      "User statistics aggregations performed.",
	})
	m.statsErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stats_errors_total",
		Help:      "User statistics aggregations aborted by fetch failures.",
	})
	m.credibilityScores = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credibility_score",
		Help:      "Distribution of computed credibility scores.",
		Buckets:   scoreBuckets,
	})
	m.experienceScores = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "experience_score",
		Help:      "Distribution of computed experience scores.",
		Buckets:   scoreBuckets,
	})

	m.crowdEstimates = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "crowd_estimates_total",
		Help:      "Crowd density estimates by resulting level.",
	}, []string{"level"})
	m.feedbackSubmissions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_submissions_total",
		Help:      "Crowd feedback records accepted.",
	})
	m.throttleRejections = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "throttle_rejections_total",
		Help:      "Feedback submissions rejected by the resubmission window.",
	})

	m.storeLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_op_duration_ms",
		Help:      "Document store operation latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})
	m.malformedRecords = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_records_total",
		Help:      "Documents skipped because they failed to decode.",
	}, []string{"kind"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.httpErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint, method and error type.",
	}, []string{"endpoint", "method", "type"})
}

// Global helper functions, mirrored onto the singleton manager.

// RecordStatsComputation counts a completed user stats aggregation.
func RecordStatsComputation() {
	if globalManager.enabled {
		globalManager.statsComputations.Inc()
	}
}

// RecordStatsError counts an aborted user stats aggregation.
func RecordStatsError() {
	if globalManager.enabled {
		globalManager.statsErrors.Inc()
	}
}

// ObserveCredibility records a computed credibility score.
func ObserveCredibility(score int) {
	if globalManager.enabled {
		globalManager.credibilityScores.Observe(float64(score))
	}
}

// ObserveExperience records a computed experience score.
func ObserveExperience(score int) {
	if globalManager.enabled {
		globalManager.experienceScores.Observe(float64(score))
	}
}

// RecordCrowdEstimate counts an estimate by its resulting level label.
func RecordCrowdEstimate(level string) {
	if globalManager.enabled {
		globalManager.crowdEstimates.WithLabelValues(level).Inc()
	}
}

// RecordFeedbackSubmission counts an accepted feedback record.
func RecordFeedbackSubmission() {
	if globalManager.enabled {
		globalManager.feedbackSubmissions.Inc()
	}
}

// RecordThrottleRejection counts a too-soon rejection.
func RecordThrottleRejection() {
	if globalManager.enabled {
		globalManager.throttleRejections.Inc()
	}
}

// ObserveStoreLatency records a store operation's duration.
func ObserveStoreLatency(op string, ms float64) {
	if globalManager.enabled {
		globalManager.storeLatency.WithLabelValues(op).Observe(ms)
	}
}

// RecordMalformedRecord counts a skipped undecodable document.
func RecordMalformedRecord(kind string) {
	if globalManager.enabled {
		globalManager.malformedRecords.WithLabelValues(kind).Inc()
	}
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
	}
}

// RecordHTTPError counts an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// GetRegistry returns the custom registry for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
