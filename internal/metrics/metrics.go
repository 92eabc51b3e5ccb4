// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal tracks HTTP requests by path, method, and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by path, method, and status",
		},
		[]string{"path", "method", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"path", "method"},
	)

	// RateLimitedRequests tracks requests rejected by the rate limiter
	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total requests rejected by the per-client rate limiter",
		},
	)
)

// Upstream (YouTube) metrics
var (
	// UpstreamRequestsTotal tracks upstream fetches by operation and status
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total upstream YouTube requests by operation and status",
		},
		[]string{"operation", "status"},
	)

	// UpstreamRequestDuration tracks upstream fetch latency in seconds
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream YouTube request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	// UpstreamRetriesTotal tracks upstream fetch retries
	UpstreamRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "upstream_retries_total",
			Help: "Total upstream fetch retries after transient failures",
		},
	)
)

// Transcript cache metrics
var (
	// CacheHitsTotal tracks cache hits by tier (memory/redis) and kind
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcript_cache_hits_total",
			Help: "Transcript cache hits by tier and entry kind",
		},
		[]string{"tier", "kind"},
	)

	// CacheMissesTotal tracks cache misses by kind
	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcript_cache_misses_total",
			Help: "Transcript cache misses by entry kind",
		},
		[]string{"kind"},
	)

	// CacheEvictions tracks expired entries removed from the in-memory cache
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transcript_cache_evictions_total",
			Help: "Expired entries evicted from the in-memory transcript cache",
		},
	)

	// CacheSize tracks the current in-memory cache entry count
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "transcript_cache_size",
			Help: "Current number of entries in the in-memory transcript cache",
		},
	)
)

// Redis metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
