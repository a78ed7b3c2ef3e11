// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/testinfra"
)

const testImageBase = "https://img.example/w500"

func newTestClient(t *testing.T, tmdb *testinfra.MockTMDBServer, mutate func(*Config)) *Client {
	t.Helper()

	cfg := &Config{
		APIKey:            "test-key",
		BaseURL:           tmdb.URL(),
		ImageBaseURL:      testImageBase,
		Timeout:           500 * time.Millisecond,
		RequestsPerSecond: 1000,
		Burst:             100,
	}
	if mutate != nil {
		mutate(cfg)
	}

	c, err := NewClient(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func avatar() testinfra.TMDBMovie {
	return testinfra.TMDBMovie{
		PosterPath:  testinfra.StringPtr("/avatar.jpg"),
		ReleaseDate: "2009-12-15",
		VoteAverage: testinfra.FloatPtr(7.2),
	}
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"ftp://example.com", "not a url", "http://"} {
		if _, err := NewClient(&Config{BaseURL: raw}, zerolog.Nop()); err == nil {
			t.Errorf("NewClient(BaseURL=%q) should fail", raw)
		}
	}
}

func TestClient_FetchDetails_Success(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetMovie(19995, avatar())
	c := newTestClient(t, tmdb, nil)

	got := c.FetchDetails(context.Background(), 19995)
	want := Details{PosterURL: testImageBase + "/avatar.jpg", Year: "2009", Rating: "7.2"}
	if got != want {
		t.Errorf("FetchDetails() = %+v, want %+v", got, want)
	}

	captures := tmdb.Captures()
	if len(captures) != 1 {
		t.Fatalf("requests = %d, want 1", len(captures))
	}
	if captures[0].Path != "/movie/19995" || captures[0].APIKey != "test-key" || captures[0].Language != "en-US" {
		t.Errorf("request = %+v", captures[0])
	}
}

func TestClient_FetchDetails_CachesSuccess(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetMovie(19995, avatar())
	c := newTestClient(t, tmdb, nil)

	first := c.FetchDetails(context.Background(), 19995)
	second := c.FetchDetails(context.Background(), 19995)

	if first != second {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	if n := tmdb.RequestCount(19995); n != 1 {
		t.Errorf("upstream requests = %d, want 1", n)
	}
	if st := c.CacheStats(); st.Hits != 1 {
		t.Errorf("cache hits = %d, want 1", st.Hits)
	}
}

func TestClient_FetchDetails_CacheExpires(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetMovie(19995, avatar())
	c := newTestClient(t, tmdb, func(cfg *Config) { cfg.CacheTTL = 50 * time.Millisecond })

	c.FetchDetails(context.Background(), 19995)
	time.Sleep(80 * time.Millisecond)
	c.FetchDetails(context.Background(), 19995)

	if n := tmdb.RequestCount(19995); n != 2 {
		t.Errorf("upstream requests = %d, want 2 after TTL", n)
	}
}

func TestClient_FetchDetails_Fallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(m *testinfra.MockTMDBServer)
	}{
		{"not found", func(*testinfra.MockTMDBServer) {}},
		{"unauthorized", func(m *testinfra.MockTMDBServer) { m.SetStatus(1, http.StatusUnauthorized) }},
		{"server error", func(m *testinfra.MockTMDBServer) { m.SetStatus(1, http.StatusInternalServerError) }},
		{"bad json", func(m *testinfra.MockTMDBServer) { m.SetRaw(1, `{"poster_path": 42`) }},
		{"timeout", func(m *testinfra.MockTMDBServer) {
			m.SetMovie(1, avatar())
			m.SetDelay(1, 2*time.Second)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmdb := testinfra.NewMockTMDBServer(t)
			tt.setup(tmdb)
			c := newTestClient(t, tmdb, func(cfg *Config) { cfg.Timeout = 200 * time.Millisecond })

			if got := c.FetchDetails(context.Background(), 1); got != FallbackDetails() {
				t.Errorf("FetchDetails() = %+v, want placeholders", got)
			}

			// Fallbacks are not cached: the next call goes upstream again.
			c.FetchDetails(context.Background(), 1)
			if n := tmdb.RequestCount(1); n != 2 {
				t.Errorf("upstream requests = %d, want 2", n)
			}
		})
	}
}

func TestClient_FetchDetails_NoAPIKey(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetMovie(19995, avatar())
	c := newTestClient(t, tmdb, func(cfg *Config) { cfg.APIKey = "" })

	if c.HasAPIKey() {
		t.Error("HasAPIKey() = true, want false")
	}
	if got := c.FetchDetails(context.Background(), 19995); got != FallbackDetails() {
		t.Errorf("FetchDetails() = %+v, want placeholders", got)
	}
	if n := len(tmdb.Captures()); n != 0 {
		t.Errorf("upstream requests = %d, want 0 without API key", n)
	}
}

func TestClient_FetchDetails_CanceledContext(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetMovie(19995, avatar())
	c := newTestClient(t, tmdb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := c.FetchDetails(ctx, 19995); got != FallbackDetails() {
		t.Errorf("FetchDetails() = %+v, want placeholders", got)
	}
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetStatus(7, http.StatusBadGateway)
	c := newTestClient(t, tmdb, func(cfg *Config) { cfg.BreakerTimeout = time.Hour })

	for i := 0; i < 10; i++ {
		c.FetchDetails(context.Background(), 7)
	}
	if got := c.BreakerState(); got != "open" {
		t.Fatalf("BreakerState() = %q, want open", got)
	}

	c.FetchDetails(context.Background(), 7)
	if n := tmdb.RequestCount(7); n != 10 {
		t.Errorf("upstream requests = %d, want 10 (open circuit short-circuits)", n)
	}
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	c := newTestClient(t, tmdb, nil)

	for i := 0; i < 15; i++ {
		c.FetchDetails(context.Background(), 404)
	}
	if got := c.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
}

func TestClient_CanceledRequestsDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetMovie(7, avatar())
	tmdb.SetDelay(7, 5*time.Second)
	c := newTestClient(t, tmdb, func(cfg *Config) { cfg.Timeout = 10 * time.Second })

	for i := 0; i < 12; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)
		if got := c.FetchDetails(ctx, 7); got != FallbackDetails() {
			t.Errorf("FetchDetails() = %+v, want placeholders", got)
		}
		cancel()
	}

	if n := tmdb.RequestCount(7); n != 12 {
		t.Errorf("upstream requests = %d, want 12", n)
	}
	if got := c.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
}

func TestClient_Enrich_OneTimeoutAmongFive(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	recs := make([]recommend.Recommendation, 5)
	for i := range recs {
		id := int64(100 + i)
		recs[i] = recommend.Recommendation{Title: string(rune('A' + i)), ExternalID: id, RowIndex: i + 1, Score: 0.9 - float32(i)/10}
		tmdb.SetMovie(id, testinfra.TMDBMovie{
			PosterPath:  testinfra.StringPtr("/p" + string(rune('a'+i)) + ".jpg"),
			ReleaseDate: "2001-01-01",
			VoteAverage: testinfra.FloatPtr(6.5),
		})
	}
	tmdb.SetDelay(102, 2*time.Second)

	c := newTestClient(t, tmdb, func(cfg *Config) { cfg.Timeout = 200 * time.Millisecond })
	cards := c.Enrich(context.Background(), recs)

	if len(cards) != 5 {
		t.Fatalf("len(cards) = %d, want 5", len(cards))
	}
	for i, card := range cards {
		if card.Title != recs[i].Title || card.ExternalID != recs[i].ExternalID {
			t.Errorf("cards[%d] = %+v does not match recommendation %+v", i, card, recs[i])
		}
		if i == 2 {
			if !card.MetadataFallback || card.PosterURL != PlaceholderPoster || card.Year != "N/A" || card.Rating != "N/A" {
				t.Errorf("cards[2] = %+v, want placeholders", card)
			}
			continue
		}
		if card.MetadataFallback || card.Year != "2001" || card.Rating != "6.5" || !strings.HasPrefix(card.PosterURL, testImageBase) {
			t.Errorf("cards[%d] = %+v, want real metadata", i, card)
		}
	}
}

func TestClient_PersistentCacheSurvivesRestart(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "metadata")
	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetMovie(19995, avatar())

	first, err := NewClient(&Config{
		APIKey:              "k",
		BaseURL:             tmdb.URL(),
		PersistentCachePath: dir,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	want := first.FetchDetails(context.Background(), 19995)
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := NewClient(&Config{
		APIKey:              "k",
		BaseURL:             tmdb.URL(),
		PersistentCachePath: dir,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient() reopen error = %v", err)
	}
	defer second.Close()

	if got := second.FetchDetails(context.Background(), 19995); got != want {
		t.Errorf("FetchDetails() after reopen = %+v, want %+v", got, want)
	}
	if n := tmdb.RequestCount(19995); n != 1 {
		t.Errorf("upstream requests = %d, want 1", n)
	}
}

func TestClient_PruneMemory(t *testing.T) {
	t.Parallel()

	tmdb := testinfra.NewMockTMDBServer(t)
	tmdb.SetMovie(1, avatar())
	tmdb.SetMovie(2, avatar())
	c := newTestClient(t, tmdb, func(cfg *Config) { cfg.CacheTTL = 30 * time.Millisecond })

	c.FetchDetails(context.Background(), 1)
	c.FetchDetails(context.Background(), 2)
	time.Sleep(50 * time.Millisecond)

	if removed := c.PruneMemory(); removed != 2 {
		t.Errorf("PruneMemory() = %d, want 2", removed)
	}
}
