// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

// Recommendation is one ranked neighbor of the selected movie.
type Recommendation struct {
	// Title of the recommended movie.
	Title string `json:"title"`

	// ExternalID is the TMDB id used for metadata enrichment.
	ExternalID int64 `json:"external_id"`

	// RowIndex is the movie's catalog row.
	RowIndex int `json:"row_index"`

	// Score is the similarity of this movie to the selected one.
	Score float32 `json:"score"`
}
