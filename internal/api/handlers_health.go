// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"
)

// Readiness status values.
const (
	StatusReady    = "ready"
	StatusDegraded = "degraded"
)

// breakerDisabled is reported when no metadata client is configured.
const breakerDisabled = "disabled"

// ReadinessResponse is the payload of GET /api/v1/health/ready.
type ReadinessResponse struct {
	Status          string  `json:"status"`
	CatalogSize     int     `json:"catalog_size"`
	DuplicateTitles int     `json:"duplicate_titles"`
	K               int     `json:"k"`
	MetadataAPIKey  bool    `json:"metadata_api_key"`
	BreakerState    string  `json:"breaker_state"`
	Uptime          float64 `json:"uptime_seconds"`
}

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests. The handler only exists once
// the artifacts loaded, so it always answers 200; metadata problems are
// reported as "degraded" because the page still renders with placeholders.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		Status:          StatusReady,
		CatalogSize:     h.catalog.Len(),
		DuplicateTitles: len(h.catalog.DuplicateTitles()),
		K:               h.recommender.K(),
		BreakerState:    breakerDisabled,
		Uptime:          time.Since(h.startTime).Seconds(),
	}

	if h.enricher != nil {
		resp.MetadataAPIKey = h.enricher.HasAPIKey()
		resp.BreakerState = h.enricher.BreakerState()
	}
	if !resp.MetadataAPIKey || resp.BreakerState == "open" {
		resp.Status = StatusDegraded
	}

	WriteSuccess(w, r, resp)
}
