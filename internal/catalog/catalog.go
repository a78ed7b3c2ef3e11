// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
)

// Movie is one catalog row.
type Movie struct {
	// Title is the user-facing lookup key.
	Title string `json:"title"`

	// ExternalID is the TMDB movie id used for metadata lookups.
	ExternalID int64 `json:"external_id"`

	// RowIndex is the movie's position in both the catalog and the matrix.
	RowIndex int `json:"-"`
}

// Catalog is the immutable movie table together with its similarity matrix.
type Catalog struct {
	movies     []Movie
	matrix     *SimilarityMatrix
	index      map[string]int
	duplicates []string
}

// New builds a catalog from movies and a matrix of matching dimension.
// RowIndex values are reassigned to the slice positions.
func New(movies []Movie, matrix *SimilarityMatrix) (*Catalog, error) {
	if matrix == nil {
		return nil, errors.New("catalog: nil similarity matrix")
	}
	if matrix.Dim() != len(movies) {
		return nil, fmt.Errorf("%w: similarity dimension %d does not match %d movies",
			ErrArtifactCorrupt, matrix.Dim(), len(movies))
	}

	if err := validateMovies(movies); err != nil {
		return nil, err
	}

	c := &Catalog{
		movies: make([]Movie, len(movies)),
		matrix: matrix,
		index:  make(map[string]int, len(movies)),
	}

	seenDup := make(map[string]struct{})
	for i, mv := range movies {
		mv.RowIndex = i
		c.movies[i] = mv

		if _, exists := c.index[mv.Title]; exists {
			if _, reported := seenDup[mv.Title]; !reported {
				seenDup[mv.Title] = struct{}{}
				c.duplicates = append(c.duplicates, mv.Title)
			}
			continue
		}
		c.index[mv.Title] = i
	}

	return c, nil
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Matrix returns the similarity matrix.
func (c *Catalog) Matrix() *SimilarityMatrix {
	return c.matrix
}

// Titles returns every title in row order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.movies))
	for i, mv := range c.movies {
		titles[i] = mv.Title
	}
	return titles
}

// ResolveIndex returns the row of the first movie whose title equals title exactly.
func (c *Catalog) ResolveIndex(title string) (int, error) {
	if i, ok := c.index[title]; ok {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrNotFound, title)
}

// Movie returns the movie at row i.
func (c *Catalog) Movie(i int) (Movie, bool) {
	if i < 0 || i >= len(c.movies) {
		return Movie{}, false
	}
	return c.movies[i], true
}

// DuplicateTitles lists titles that appear on more than one row.
func (c *Catalog) DuplicateTitles() []string {
	out := make([]string, len(c.duplicates))
	copy(out, c.duplicates)
	return out
}

// validateMovies checks the per-movie rules shared by artifacts and New:
// a non-empty title and a non-negative external id.
func validateMovies(movies []Movie) error {
	for i, mv := range movies {
		if mv.Title == "" {
			return fmt.Errorf("%w: movie %d has an empty title", ErrArtifactCorrupt, i)
		}
		if mv.ExternalID < 0 {
			return fmt.Errorf("%w: movie %d (%q) has negative external id %d",
				ErrArtifactCorrupt, i, mv.Title, mv.ExternalID)
		}
	}
	return nil
}
