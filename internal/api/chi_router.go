// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinematch/internal/middleware"
)

// RouterConfig holds router-level settings not owned by ChiMiddleware.
type RouterConfig struct {
	// RequestTimeout bounds each page and API request. Zero disables it.
	RequestTimeout time.Duration

	// SlowRequestThreshold is passed to the access log.
	SlowRequestThreshold time.Duration
}

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	config        RouterConfig
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware, cfg RouterConfig) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		config:        cfg,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(router.config.SlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chimiddleware.Compress(5, "text/html", "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).MethodNotAllowed()
	})

	// Page
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("page"))
		r.Use(PageSecurityHeaders())
		router.useTimeout(r)
		r.Get("/", router.handler.Index)
	})

	// Health
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Use(APISecurityHeaders())
		router.useTimeout(r)
		r.Get("/movies", router.handler.Movies)
		r.Get("/recommendations", router.handler.Recommendations)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (router *Router) useTimeout(r chi.Router) {
	if router.config.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(router.config.RequestTimeout))
	}
}
