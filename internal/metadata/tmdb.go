// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
tmdb.go - TMDB REST API Client

Plain HTTP access to the TMDB v3 movie details endpoint. Resilience and
caching are layered on top by Client.

API Reference: https://developer.themoviedb.org/reference/movie-details
*/

package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// maxErrorBody bounds how much of an error response is kept for logging.
const maxErrorBody = 512

// StatusError reports a non-2xx TMDB response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb returned status %d: %s", e.StatusCode, e.Body)
}

// clientError reports whether the status describes the request rather than
// upstream health.
func (e *StatusError) clientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

// errDecode marks an undecodable response body.
var errDecode = errors.New("decode tmdb response")

// tmdbAPI provides access to the TMDB REST API.
type tmdbAPI struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

func newTMDBAPI(baseURL, apiKey, language string, timeout time.Duration) *tmdbAPI {
	return &tmdbAPI{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetMovie fetches /movie/{id}.
func (c *tmdbAPI) GetMovie(ctx context.Context, id int64) (*tmdbMovie, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	endpoint := c.baseURL + "/movie/" + strconv.FormatInt(id, 10) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb request failed: %w", redactKey(err, c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var movie tmdbMovie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, fmt.Errorf("%w: %w", errDecode, err)
	}

	return &movie, nil
}

// redactKey strips the API key from url.Error messages so it never reaches logs.
func redactKey(err error, key string) error {
	var uerr *url.Error
	if key == "" || !errors.As(err, &uerr) {
		return err
	}
	redacted := *uerr
	redacted.URL = strings.ReplaceAll(uerr.URL, url.QueryEscape(key), "REDACTED")
	return &redacted
}
