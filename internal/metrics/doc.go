// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry at package init
through promauto and exposed at /metrics:

	curl http://localhost:8501/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejected requests (counter)
    Labels: endpoint

Catalog Metrics:
  - catalog_movies: Loaded catalog size (gauge)
  - catalog_duplicate_titles: Titles present on more than one row (gauge)
  - catalog_load_duration_seconds: Startup load time (gauge)

Recommendation Metrics:
  - recommendations_total: Lookups by result (counter)
    Labels: result (ok, not_found, error)
  - recommendation_duration_seconds: Ranking time (histogram)

Metadata Metrics:
  - metadata_fetch_total: Lookups by outcome (counter)
    Labels: result (success, fallback)
  - metadata_fallbacks_total: Placeholder results by cause (counter)
    Labels: reason
  - metadata_fetch_duration_seconds: Upstream TMDB latency (histogram)

Cache Metrics:
  - cache_hits_total, cache_misses_total: Labels: cache_type (memory, persistent)
  - cache_entries: Current entries (gauge)
  - cache_gc_runs_total: Persistent cache GC passes by result (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

# Example Queries

TMDB fallback rate over 5 minutes:

	sum(rate(metadata_fetch_total{result="fallback"}[5m]))
	  / sum(rate(metadata_fetch_total[5m]))

Not-found share of lookups:

	rate(recommendations_total{result="not_found"}[5m])
	  / sum(rate(recommendations_total[5m]))
*/
package metrics
