// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api serves the Cinematch page and JSON API over a chi router.

# Routes

	GET /                              selection form and recommendation cards
	GET /?movie=<title>                same page with results for title
	GET /api/v1/movies                 all titles in catalog order
	GET /api/v1/recommendations        ?title=<title>[&enrich=false]
	GET /api/v1/health/live            liveness probe
	GET /api/v1/health/ready           catalog size, K and breaker state
	GET /metrics                       Prometheus exposition

# Response Format

JSON endpoints share one envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "NOT_FOUND", "message": "...", "details": {...}, "request_id": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Error codes: BAD_REQUEST, NOT_FOUND, METHOD_NOT_ALLOWED, VALIDATION_ERROR,
TOO_MANY_REQUESTS, INTERNAL_ERROR, SERVICE_UNAVAILABLE.

# Middleware

Every route passes through request id assignment, real IP extraction, access
logging, panic recovery, Prometheus instrumentation, CORS (go-chi/cors) and
response compression. Page and API groups add per-IP rate limiting
(go-chi/httprate), security headers and an optional request timeout.

The page is rendered server-side from an embedded html/template and uses no
JavaScript. Metadata failures never fail a request: affected cards carry
placeholder poster, year and rating.
*/
package api
