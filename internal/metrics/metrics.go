// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Circuit breaker states as exported by CircuitBreakerState.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Catalog Metrics
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	CatalogDuplicateTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_duplicate_titles",
			Help: "Number of titles that appear on more than one catalog row",
		},
	)

	CatalogLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_load_duration_seconds",
			Help: "Time spent loading and validating the catalog artifacts at startup",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation lookups",
		},
		[]string{"result"}, // "ok", "not_found", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent ranking similarity rows",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// Metadata Metrics
	MetadataFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_fetch_total",
			Help: "Total number of metadata lookups by outcome",
		},
		[]string{"result"}, // "success", "fallback"
	)

	MetadataFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_fallbacks_total",
			Help: "Total number of metadata lookups that fell back to placeholders",
		},
		[]string{"reason"}, // "transport", "status", "decode", "circuit_open", "rate_limit", "no_api_key"
	)

	MetadataFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metadata_fetch_duration_seconds",
			Help:    "Duration of upstream metadata requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "memory", "persistent"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_gc_runs_total",
			Help: "Total number of persistent cache value-log GC runs",
		},
		[]string{"result"}, // "rewritten", "noop", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// SetCatalogInfo publishes the loaded catalog shape
func SetCatalogInfo(movies, duplicateTitles int, loadDuration time.Duration) {
	CatalogMovies.Set(float64(movies))
	CatalogDuplicateTitles.Set(float64(duplicateTitles))
	CatalogLoadDuration.Set(loadDuration.Seconds())
}

// RecordRecommendation records one lookup. result is "ok", "not_found" or "error".
func RecordRecommendation(result string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(result).Inc()
	if result == "ok" {
		RecommendationDuration.Observe(duration.Seconds())
	}
}

// RecordMetadataFetch records a metadata lookup outcome.
// An empty reason means the lookup succeeded.
func RecordMetadataFetch(reason string) {
	if reason == "" {
		MetadataFetchTotal.WithLabelValues("success").Inc()
		return
	}
	MetadataFetchTotal.WithLabelValues("fallback").Inc()
	MetadataFallbacks.WithLabelValues(reason).Inc()
}

// ObserveMetadataLatency records the duration of an upstream request
func ObserveMetadataLatency(duration time.Duration) {
	MetadataFetchDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records a hit or miss for cacheType
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// SetCacheSize publishes the number of entries in cacheType
func SetCacheSize(cacheType string, entries int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(entries))
}

// RecordCacheGC records a value-log GC pass
func RecordCacheGC(result string) {
	CacheGCRuns.WithLabelValues(result).Inc()
}
