// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
)

// DefaultSlowRequestThreshold is used when AccessLog gets a non-positive threshold.
const DefaultSlowRequestThreshold = time.Second

// AccessLog logs one line per request through the context logger, so the
// request and correlation ids set by RequestID are included. Requests slower
// than slowThreshold and 5xx responses are logged at warn, the rest at debug.
func AccessLog(slowThreshold time.Duration) func(http.Handler) http.Handler {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowRequestThreshold
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())

			var event *zerolog.Event
			switch {
			case rec.status >= http.StatusInternalServerError:
				event = logger.Warn()
			case duration > slowThreshold:
				event = logger.Warn().Dur("threshold", slowThreshold)
			default:
				event = logger.Debug()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int64("duration_ms", duration.Milliseconds()).
				Str("remote_addr", r.RemoteAddr).
				Msg(accessLogMessage(rec.status, duration, slowThreshold))
		})
	}
}

func accessLogMessage(status int, duration, threshold time.Duration) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "Request failed"
	case duration > threshold:
		return "Slow request detected"
	default:
		return "Request handled"
	}
}
