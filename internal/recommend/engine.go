// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Engine produces similarity-ranked recommendations from a catalog.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend returns up to K movies most similar to title, best first.
// An unknown title returns a nil slice and an error wrapping catalog.ErrNotFound.
func (e *Engine) Recommend(ctx context.Context, title string, cat *catalog.Catalog) ([]Recommendation, error) {
	start := time.Now()

	if cat == nil {
		return nil, errors.New("recommend: nil catalog")
	}

	row, err := cat.ResolveIndex(title)
	if err != nil {
		e.logger.Debug().Str("title", title).Msg("title not in catalog")
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recommend %q: %w", title, err)
	}

	recs := e.rank(cat, row)

	e.logger.Debug().
		Str("title", title).
		Int("row", row).
		Int("returned", len(recs)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return recs, nil
}

// rank orders every row except self by descending score and keeps the first K.
func (e *Engine) rank(cat *catalog.Catalog, row int) []Recommendation {
	scores := cat.Matrix().Row(row)

	candidates := make([]int, 0, len(scores))
	for j := range scores {
		if j == row {
			continue
		}
		candidates = append(candidates, j)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] > scores[candidates[b]]
	})

	k := min(e.config.K, len(candidates))
	recs := make([]Recommendation, 0, k)
	for _, j := range candidates[:k] {
		mv, _ := cat.Movie(j)
		recs = append(recs, Recommendation{
			Title:      mv.Title,
			ExternalID: mv.ExternalID,
			RowIndex:   j,
			Score:      scores[j],
		})
	}
	return recs
}

// K returns the configured result size.
func (e *Engine) K() int {
	return e.config.K
}
