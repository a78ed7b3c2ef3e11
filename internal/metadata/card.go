// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"context"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// Card is a recommendation joined with its display metadata.
type Card struct {
	Title      string  `json:"title"`
	ExternalID int64   `json:"external_id"`
	Score      float32 `json:"score"`
	PosterURL  string  `json:"poster_url"`
	Year       string  `json:"year"`
	Rating     string  `json:"rating"`

	// MetadataFallback is true when the display fields are placeholders.
	MetadataFallback bool `json:"metadata_fallback"`
}

// YearCaption renders the year line shown under a poster.
func (c Card) YearCaption() string {
	return "Year: " + c.Year
}

// RatingCaption renders the rating line shown under a poster.
func (c Card) RatingCaption() string {
	if c.Rating == NotAvailable {
		return "Rating: N/A"
	}
	return "Rating: " + c.Rating + " ⭐"
}

// Enrich fetches details for each recommendation in order. Lookups run
// sequentially and a failed lookup only affects its own card.
func (c *Client) Enrich(ctx context.Context, recs []recommend.Recommendation) []Card {
	cards := make([]Card, 0, len(recs))
	for _, r := range recs {
		d := c.FetchDetails(ctx, r.ExternalID)
		cards = append(cards, NewCard(r, d))
	}
	return cards
}

// NewCard joins a recommendation and its details.
//
//nolint:gocritic // hugeParam: values are small and immutable
func NewCard(r recommend.Recommendation, d Details) Card {
	return Card{
		Title:            r.Title,
		ExternalID:       r.ExternalID,
		Score:            r.Score,
		PosterURL:        d.PosterURL,
		Year:             d.Year,
		Rating:           d.Rating,
		MetadataFallback: d.Fallback,
	}
}
