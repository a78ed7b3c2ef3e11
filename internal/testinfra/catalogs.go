// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package testinfra

import (
	"testing"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// NewCatalog builds a catalog from titles and a square score matrix.
// External ids are 1000 + row index.
func NewCatalog(t testing.TB, titles []string, rows [][]float32) *catalog.Catalog {
	t.Helper()

	movies := make([]catalog.Movie, len(titles))
	for i, title := range titles {
		movies[i] = catalog.Movie{Title: title, ExternalID: int64(1000 + i)}
	}

	m, err := catalog.NewSimilarityMatrix(rows)
	if err != nil {
		t.Fatalf("NewSimilarityMatrix() error = %v", err)
	}
	cat, err := catalog.New(movies, m)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return cat
}

// SevenMovieCatalog returns movies A..G where A is most similar to
// C (0.9), then B (0.8), D (0.7), E (0.6), F (0.5), G (0.1).
func SevenMovieCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()

	return NewCatalog(t,
		[]string{"A", "B", "C", "D", "E", "F", "G"},
		[][]float32{
			{1.0, 0.8, 0.9, 0.7, 0.6, 0.5, 0.1},
			{0.8, 1.0, 0.3, 0.2, 0.2, 0.2, 0.2},
			{0.9, 0.3, 1.0, 0.4, 0.4, 0.1, 0.1},
			{0.7, 0.2, 0.4, 1.0, 0.6, 0.3, 0.3},
			{0.6, 0.2, 0.4, 0.6, 1.0, 0.5, 0.5},
			{0.5, 0.2, 0.1, 0.3, 0.5, 1.0, 0.9},
			{0.1, 0.2, 0.1, 0.3, 0.5, 0.9, 1.0},
		})
}

// TwoMovieCatalog returns movies A and B.
func TwoMovieCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()

	return NewCatalog(t, []string{"A", "B"}, [][]float32{{1, 0.4}, {0.4, 1}})
}

// IdentityCatalog returns a catalog of titles whose off-diagonal scores are
// all zero, so every neighbor ties.
func IdentityCatalog(t testing.TB, titles ...string) *catalog.Catalog {
	t.Helper()

	rows := make([][]float32, len(titles))
	for i := range rows {
		rows[i] = make([]float32, len(titles))
		rows[i][i] = 1
	}
	return NewCatalog(t, titles, rows)
}
