// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// RateLimitedTotal counts requests rejected by the summary rate limiter
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"path"},
	)
)

// Summary pipeline metrics
var (
	// GenerationRequestsTotal counts summary generations by provider and outcome.
	// outcome is "success" or an error kind such as "no_model".
	GenerationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tldr_generation_requests_total",
			Help: "Total number of summary generation requests",
		},
		[]string{"provider", "outcome"},
	)

	// GenerationDuration measures end-to-end generation time per provider
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tldr_generation_duration_seconds",
			Help:    "Time taken to generate a summary",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"provider"},
	)

	// SummaryLength measures the rendered summary length in characters
	SummaryLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tldr_summary_length_characters",
			Help:    "Length of generated summaries in characters",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200, 6400},
		},
	)

	// ProviderInvocationsTotal counts raw provider calls by feature and status
	ProviderInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tldr_provider_invocations_total",
			Help: "Total number of AI provider invocations",
		},
		[]string{"provider", "feature", "status"},
	)

	// ProviderInvocationDuration measures raw provider call latency
	ProviderInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tldr_provider_invocation_duration_seconds",
			Help:    "AI provider call latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"provider"},
	)

	// ResolutionTotal counts platform/model resolutions by result
	ResolutionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tldr_resolution_total",
			Help: "Total number of platform and model resolutions",
		},
		[]string{"result"}, // complete, fallback, no_provider, no_model
	)
)

// Preference store metrics
var (
	// StoreQueryDuration measures preference store reads
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tldr_preference_store_duration_seconds",
			Help:    "Preference store read duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"store"},
	)
)

// Resilience metrics
var (
	// CircuitState reports each circuit breaker's state: 0 closed, 1 half-open, 2 open
	CircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tldr_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"circuit"},
	)
)

// RecordCircuitState sets the gauge for the named circuit.
func RecordCircuitState(circuit string, state int) {
	CircuitState.WithLabelValues(circuit).Set(float64(state))
}

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordRateLimited counts a rate-limited request.
func RecordRateLimited(path string) {
	RateLimitedTotal.WithLabelValues(path).Inc()
}
