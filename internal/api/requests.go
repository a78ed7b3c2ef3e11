// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"strconv"
)

// MaxTitleLength bounds the title and movie query parameters in characters
// (runes, not bytes). It must match the max= value in the validate tags below.
const MaxTitleLength = 500

// RecommendationsRequest holds the query parameters of GET /api/v1/recommendations.
//
// Fields:
//   - Title: exact catalog title, required
//   - Enrich: optional boolean, defaults to true
type RecommendationsRequest struct {
	Title  string `query:"title" validate:"required,max=500,nocontrol"`
	Enrich string `query:"enrich" validate:"omitempty,boolean"`
}

// parseRecommendationsRequest reads the query string without trimming, since
// titles match exactly.
func parseRecommendationsRequest(r *http.Request) RecommendationsRequest {
	q := r.URL.Query()
	return RecommendationsRequest{
		Title:  q.Get("title"),
		Enrich: q.Get("enrich"),
	}
}

// WantsEnrichment reports whether TMDB details should be attached.
// Call only after validation.
func (req RecommendationsRequest) WantsEnrichment() bool {
	if req.Enrich == "" {
		return true
	}
	enrich, err := strconv.ParseBool(req.Enrich)
	return err != nil || enrich
}

// PageRequest holds the query parameters of GET /.
type PageRequest struct {
	Movie string `query:"movie" validate:"required,max=500,nocontrol"`
}
