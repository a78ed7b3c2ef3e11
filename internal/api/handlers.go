// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"html/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Recommender produces the nearest neighbours of a title.
type Recommender interface {
	Recommend(ctx context.Context, title string, cat *catalog.Catalog) ([]recommend.Recommendation, error)
	K() int
}

// Enricher attaches display metadata to recommendations.
type Enricher interface {
	Enrich(ctx context.Context, recs []recommend.Recommendation) []metadata.Card
	BreakerState() string
	HasAPIKey() bool
}

// Handler contains dependencies for HTTP handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, shared lookup
//   - handlers_page.go: server-rendered recommendation page
//   - handlers_recommend.go: JSON movies and recommendations endpoints
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	catalog     *catalog.Catalog
	recommender Recommender
	enricher    Enricher
	page        *template.Template
	logger      zerolog.Logger
	startTime   time.Time
}

// NewHandler creates a handler over a loaded catalog. enricher may be nil,
// in which case every card carries placeholder metadata.
func NewHandler(cat *catalog.Catalog, rec Recommender, enricher Enricher, logger zerolog.Logger) (*Handler, error) {
	if cat == nil {
		return nil, errors.New("api: catalog is required")
	}
	if rec == nil {
		return nil, errors.New("api: recommender is required")
	}

	page, err := parsePageTemplate()
	if err != nil {
		return nil, err
	}

	return &Handler{
		catalog:     cat,
		recommender: rec,
		enricher:    enricher,
		page:        page,
		logger:      logger.With().Str("component", "api").Logger(),
		startTime:   time.Now(),
	}, nil
}

// Recommendation outcomes recorded in recommendations_total.
const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

// lookup runs one recommendation and records its outcome.
func (h *Handler) lookup(ctx context.Context, title string) ([]recommend.Recommendation, error) {
	start := time.Now()
	recs, err := h.recommender.Recommend(ctx, title, h.catalog)
	switch {
	case err == nil:
		metrics.RecordRecommendation(resultOK, time.Since(start))
	case errors.Is(err, catalog.ErrNotFound):
		metrics.RecordRecommendation(resultNotFound, time.Since(start))
	default:
		metrics.RecordRecommendation(resultError, time.Since(start))
	}
	return recs, err
}

// cards enriches recs, or builds placeholder cards when no enricher is set.
func (h *Handler) cards(ctx context.Context, recs []recommend.Recommendation) []metadata.Card {
	if h.enricher != nil {
		return h.enricher.Enrich(ctx, recs)
	}
	cards := make([]metadata.Card, 0, len(recs))
	for _, r := range recs {
		cards = append(cards, metadata.NewCard(r, metadata.FallbackDetails()))
	}
	return cards
}
