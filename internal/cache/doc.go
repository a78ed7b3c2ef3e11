// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package cache provides a generic, thread-safe LRU cache with per-entry TTL.

The metadata client keeps TMDB details in an LRU[int64, metadata.Details]
so repeat lookups for popular movies skip the network. Expired entries are
dropped lazily on Get and in bulk by CleanupExpired, which the cache
maintenance service calls on a timer.

# Usage

	c := cache.NewLRU[int64, string](1000, time.Hour)
	c.Add(19995, "Avatar")
	if v, ok := c.Get(19995); ok {
	    fmt.Println(v)
	}

Stats reports hits, misses and evictions for the metrics endpoint.
*/
package cache
