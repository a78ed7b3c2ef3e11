// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"math"
	"strconv"
	"strings"
)

const (
	// PlaceholderPoster is shown when no poster is available.
	PlaceholderPoster = "https://placehold.co/500x750/333/FFFFFF?text=No+Poster"

	// NotAvailable is shown for a missing year or rating.
	NotAvailable = "N/A"
)

// Details is the display metadata for one movie.
type Details struct {
	PosterURL string `json:"poster_url"`
	Year      string `json:"year"`
	Rating    string `json:"rating"`

	// Fallback is true when the values are placeholders.
	Fallback bool `json:"fallback"`
}

// FallbackDetails returns placeholder details.
func FallbackDetails() Details {
	return Details{
		PosterURL: PlaceholderPoster,
		Year:      NotAvailable,
		Rating:    NotAvailable,
		Fallback:  true,
	}
}

// tmdbMovie is the subset of the TMDB /movie/{id} payload we read.
type tmdbMovie struct {
	ID          int64    `json:"id"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate *string  `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
}

// detailsFromMovie maps a TMDB payload to display details.
// Missing fields map to placeholders individually.
func detailsFromMovie(m *tmdbMovie, imageBaseURL string) Details {
	d := Details{
		PosterURL: PlaceholderPoster,
		Year:      NotAvailable,
		Rating:    NotAvailable,
	}

	if m.PosterPath != nil && *m.PosterPath != "" {
		d.PosterURL = strings.TrimSuffix(imageBaseURL, "/") + "/" + strings.TrimPrefix(*m.PosterPath, "/")
	}

	if m.ReleaseDate != nil && *m.ReleaseDate != "" {
		year := *m.ReleaseDate
		if len(year) > 4 {
			year = year[:4]
		}
		d.Year = year
	}

	if m.VoteAverage != nil && !math.IsNaN(*m.VoteAverage) {
		d.Rating = FormatRating(*m.VoteAverage)
	}

	return d
}

// FormatRating prints v with one decimal place. Rounding is applied to the
// exact binary value, nearest with ties to even, so 7.25 prints as 7.2.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
