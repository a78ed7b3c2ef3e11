// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// envelope decodes APIResponse while keeping data raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\n%s", err, rec.Body.String())
	}
	if env.Meta == nil {
		t.Fatal("envelope meta missing")
	}
	return env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

func newEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func newHandler(t *testing.T, cat *catalog.Catalog, rec Recommender, enricher Enricher) *Handler {
	t.Helper()
	h, err := NewHandler(cat, rec, enricher, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

// newTestServer builds the full router with rate limiting disabled.
func newTestServer(t *testing.T, cat *catalog.Catalog, rec Recommender, enricher Enricher) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"https://movies.example"}
	return NewRouter(newHandler(t, cat, rec, enricher), NewChiMiddleware(cfg), RouterConfig{}).SetupChi()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// fakeEnricher returns deterministic cards without network access.
type fakeEnricher struct {
	hasKey   bool
	state    string
	fallback bool
}

func (f *fakeEnricher) Enrich(_ context.Context, recs []recommend.Recommendation) []metadata.Card {
	cards := make([]metadata.Card, 0, len(recs))
	for _, r := range recs {
		d := metadata.Details{PosterURL: "https://img.example/p.jpg", Year: "2001", Rating: "7.1"}
		if f.fallback {
			d = metadata.FallbackDetails()
		}
		cards = append(cards, metadata.NewCard(r, d))
	}
	return cards
}

func (f *fakeEnricher) BreakerState() string { return f.state }
func (f *fakeEnricher) HasAPIKey() bool      { return f.hasKey }

// failingRecommender always fails with err.
type failingRecommender struct{ err error }

func (f failingRecommender) Recommend(context.Context, string, *catalog.Catalog) ([]recommend.Recommendation, error) {
	return nil, f.err
}

func (f failingRecommender) K() int { return recommend.DefaultK }

// slowRecommender waits for delay or context cancellation.
type slowRecommender struct{ delay time.Duration }

func (s *slowRecommender) Recommend(ctx context.Context, _ string, _ *catalog.Catalog) ([]recommend.Recommendation, error) {
	select {
	case <-time.After(s.delay):
		return []recommend.Recommendation{}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *slowRecommender) K() int { return recommend.DefaultK }
