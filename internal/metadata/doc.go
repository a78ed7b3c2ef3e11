// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metadata resolves TMDB movie ids to display details (poster URL,
release year, rating) for recommendation cards.

# Failure Model

FetchDetails never returns an error. Any failure (transport error, timeout,
non-2xx status, undecodable body, open circuit breaker, rate limiter wait
failure, missing API key) yields placeholder details:

	PosterURL: https://placehold.co/500x750/333/FFFFFF?text=No+Poster
	Year:      N/A
	Rating:    N/A
	Fallback:  true

Failures are logged at warn and counted in metadata_fallbacks_total.

# Resilience

Upstream calls go through a gobreaker circuit breaker (opens at 60% failures
over at least 10 requests, half-opens after the configured timeout) and an
x/time/rate token bucket that bounds outbound request rate. 4xx responses
other than 429 describe the requested id, not upstream health, and do not
count against the breaker.

# Caching

Details are cached by external id in two levels:

  - memory: LRU with TTL (default 1000 entries, 1 hour)
  - persistent: optional BadgerDB directory with per-entry TTL (default 24 hours)

Only successful lookups are cached. A placeholder result is retried on the
next request for that id.

# Usage

	client, err := metadata.NewClient(&metadata.Config{
	    APIKey:  os.Getenv("TMDB_API_KEY"),
	    Timeout: 10 * time.Second,
	}, logger)
	if err != nil {
	    return err
	}
	defer client.Close()

	details := client.FetchDetails(ctx, 19995)
	cards := client.Enrich(ctx, recs)
*/
package metadata
