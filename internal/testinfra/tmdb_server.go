// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package testinfra

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// TMDBMovie is the subset of the TMDB movie payload the mock serves.
type TMDBMovie struct {
	ID          int64    `json:"id"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average,omitempty"`
}

// TMDBRequest represents a captured request.
type TMDBRequest struct {
	Path     string
	APIKey   string
	Language string
}

// MockTMDBServer serves canned /movie/{id} responses.
type MockTMDBServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	movies   map[int64]TMDBMovie
	statuses map[int64]int
	delays   map[int64]time.Duration
	raw      map[int64]string
	captures []TMDBRequest
}

// NewMockTMDBServer creates a mock TMDB server closed on test cleanup.
func NewMockTMDBServer(t testing.TB) *MockTMDBServer {
	t.Helper()

	m := &MockTMDBServer{
		movies:   make(map[int64]TMDBMovie),
		statuses: make(map[int64]int),
		delays:   make(map[int64]time.Duration),
		raw:      make(map[int64]string),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

func (m *MockTMDBServer) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	m.mu.Lock()
	m.captures = append(m.captures, TMDBRequest{
		Path:     r.URL.Path,
		APIKey:   q.Get("api_key"),
		Language: q.Get("language"),
	})
	m.mu.Unlock()

	idStr, ok := strings.CutPrefix(r.URL.Path, "/movie/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, `{"status_message":"invalid id"}`, http.StatusNotFound)
		return
	}

	m.mu.Lock()
	delay := m.delays[id]
	status, hasStatus := m.statuses[id]
	raw, hasRaw := m.raw[id]
	movie, hasMovie := m.movies[id]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case hasStatus:
		w.WriteHeader(status)
		w.Write([]byte(`{"status_message":"mock failure"}`)) //nolint:errcheck
	case hasRaw:
		w.Write([]byte(raw)) //nolint:errcheck
	case hasMovie:
		movie.ID = id
		json.NewEncoder(w).Encode(movie) //nolint:errcheck
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`)) //nolint:errcheck
	}
}

// URL returns the server base URL.
func (m *MockTMDBServer) URL() string {
	return m.Server.URL
}

// SetMovie registers the payload served for id.
func (m *MockTMDBServer) SetMovie(id int64, movie TMDBMovie) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movies[id] = movie
}

// SetStatus makes id answer with an error status.
func (m *MockTMDBServer) SetStatus(id int64, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[id] = status
}

// SetRaw makes id answer with a literal body.
func (m *MockTMDBServer) SetRaw(id int64, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw[id] = body
}

// SetDelay delays the response for id.
func (m *MockTMDBServer) SetDelay(id int64, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays[id] = d
}

// Captures returns all captured requests.
func (m *MockTMDBServer) Captures() []TMDBRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TMDBRequest, len(m.captures))
	copy(out, m.captures)
	return out
}

// RequestCount returns how many requests were made for id.
func (m *MockTMDBServer) RequestCount(id int64) int {
	path := "/movie/" + strconv.FormatInt(id, 10)
	n := 0
	for _, c := range m.Captures() {
		if c.Path == path {
			n++
		}
	}
	return n
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 { return &f }
