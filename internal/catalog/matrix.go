// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"fmt"
	"math"
)

// SimilarityMatrix is a dense square matrix of similarity scores stored
// row-major. Score(i, j) is the similarity of movie i to movie j.
// It is never modified after construction.
type SimilarityMatrix struct {
	dim    int
	scores []float32
}

// NewSimilarityMatrix builds a matrix from rows. Every row must have
// len(rows) entries and contain no NaN or infinite values.
func NewSimilarityMatrix(rows [][]float32) (*SimilarityMatrix, error) {
	n := len(rows)
	scores := make([]float32, 0, n*n)

	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrArtifactCorrupt, i, len(row), n)
		}
		for j, v := range row {
			if !finite(v) {
				return nil, fmt.Errorf("%w: non-finite score at (%d,%d)", ErrArtifactCorrupt, i, j)
			}
		}
		scores = append(scores, row...)
	}

	return &SimilarityMatrix{dim: n, scores: scores}, nil
}

// Dim returns the number of rows (and columns).
func (m *SimilarityMatrix) Dim() int {
	if m == nil {
		return 0
	}
	return m.dim
}

// Score returns the similarity of row i to column j.
// It panics if either index is out of range, like a slice access.
func (m *SimilarityMatrix) Score(i, j int) float32 {
	if i < 0 || i >= m.dim || j < 0 || j >= m.dim {
		panic(fmt.Sprintf("catalog: score index (%d,%d) out of range for dimension %d", i, j, m.dim))
	}
	return m.scores[i*m.dim+j]
}

// Row returns a copy of row i.
func (m *SimilarityMatrix) Row(i int) []float32 {
	if i < 0 || i >= m.dim {
		panic(fmt.Sprintf("catalog: row %d out of range for dimension %d", i, m.dim))
	}
	out := make([]float32, m.dim)
	copy(out, m.scores[i*m.dim:(i+1)*m.dim])
	return out
}

// DiagonalViolations returns the rows whose diagonal entry is not the row
// maximum. Well-formed similarity data returns an empty slice.
func (m *SimilarityMatrix) DiagonalViolations() []int {
	var rows []int
	for i := 0; i < m.Dim(); i++ {
		self := m.scores[i*m.dim+i]
		for j := 0; j < m.dim; j++ {
			if m.scores[i*m.dim+j] > self {
				rows = append(rows, i)
				break
			}
		}
	}
	return rows
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
