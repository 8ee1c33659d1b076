package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Backend (LLM) call latency in seconds
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_call_duration_seconds",
			Help:    "Generation backend call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~200s
		},
		[]string{"role", "status"},
	)

	// Gateway operation outcomes
	RequestOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of gateway requests by outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	// Rate limit rejections
	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// RecordHTTPRequestDuration records the latency of one HTTP request
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordBackendCall records the latency of one backend capability call
func RecordBackendCall(role, status string, duration time.Duration) {
	BackendCallDuration.WithLabelValues(role, status).Observe(duration.Seconds())
}

// IncrementRequestOutcome increases the outcome counter for an endpoint
func IncrementRequestOutcome(endpoint, outcome string) {
	RequestOutcomes.WithLabelValues(endpoint, outcome).Inc()
}

// IncrementRateLimitRejection increases the rate limit rejection counter
func IncrementRateLimitRejection() {
	RateLimitRejections.Inc()
}
