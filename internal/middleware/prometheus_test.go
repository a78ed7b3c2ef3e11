// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinematch/internal/metrics"
)

func newInstrumentedRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/movies/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK) // ignored, first status wins
	})
	r.Get("/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func TestPrometheusMetrics(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		endpoint string
		status   string
	}{
		{"route pattern label", "/movies/42", "/movies/{id}", "201"},
		{"first status wins", "/boom", "/boom", "500"},
		{"implicit 200", "/implicit", "/implicit", "200"},
		{"unmatched route", "/does-not-exist", unmatchedRoute, "404"},
	}

	router := newInstrumentedRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, tt.endpoint, tt.status)
			before := testutil.ToFloat64(counter)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("api_requests_total{%s,%s} = %v, want %v", tt.endpoint, tt.status, got, before+1)
			}
		})
	}
}

func TestPrometheusMetrics_ActiveRequestsReturnToBaseline(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIActiveRequests)

	var during float64
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.APIActiveRequests)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if during < before+1 {
		t.Errorf("active requests during handler = %v, want at least %v", during, before+1)
	}
	if after := testutil.ToFloat64(metrics.APIActiveRequests); after != before {
		t.Errorf("active requests after = %v, want %v", after, before)
	}
}

func TestRoutePattern_NoChiContext(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	if got := routePattern(req); got != unmatchedRoute {
		t.Errorf("routePattern() = %q, want %q", got, unmatchedRoute)
	}
}
