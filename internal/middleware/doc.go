// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP middleware shared by the Cinematch router.

All middleware has the chi signature func(http.Handler) http.Handler.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - AccessLog: one structured log line per request, warn on slow or 5xx
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Typical order:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
