// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// User-facing messages shared by the page and the JSON API.
const (
	MsgMovieNotFound     = "Movie not found in the dataset. Please select another one."
	MsgNoRecommendations = "No recommendations available for this movie."
)

// MoviesResponse is the payload of GET /api/v1/movies.
type MoviesResponse struct {
	Count           int      `json:"count"`
	Titles          []string `json:"titles"`
	DuplicateTitles []string `json:"duplicate_titles,omitempty"`
}

// RecommendationsResponse is the payload of GET /api/v1/recommendations.
type RecommendationsResponse struct {
	Title           string                     `json:"title"`
	K               int                        `json:"k"`
	Count           int                        `json:"count"`
	Enriched        bool                       `json:"enriched"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Cards           []metadata.Card            `json:"cards,omitempty"`
}

// Movies handles GET /api/v1/movies and lists every title in catalog order.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, MoviesResponse{
		Count:           h.catalog.Len(),
		Titles:          h.catalog.Titles(),
		DuplicateTitles: h.catalog.DuplicateTitles(),
	})
}

// Recommendations handles GET /api/v1/recommendations?title=<title>[&enrich=false].
//
// Responses:
//   - 200 with up to K recommendations, best first
//   - 400 VALIDATION_ERROR for a missing, oversized or control-character title
//   - 404 NOT_FOUND when the title is not in the catalog
//   - 500 INTERNAL_ERROR otherwise
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := parseRecommendationsRequest(r)
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationFailed(verr)
		return
	}

	recs, err := h.lookup(r.Context(), req.Title)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound, MsgMovieNotFound,
				map[string]interface{}{"title": req.Title})
			return
		}
		rw.InternalError("Failed to compute recommendations", err)
		return
	}

	resp := RecommendationsResponse{
		Title:           req.Title,
		K:               h.recommender.K(),
		Count:           len(recs),
		Recommendations: recs,
	}
	if req.WantsEnrichment() && len(recs) > 0 {
		start := time.Now()
		resp.Cards = h.cards(r.Context(), recs)
		resp.Enriched = true
		h.logger.Debug().
			Str("title", req.Title).
			Int("cards", len(resp.Cards)).
			Dur("enrich_duration", time.Since(start)).
			Msg("Recommendations enriched")
	}

	rw.Success(resp)
}
