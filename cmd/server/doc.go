// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Command server runs the Cinematch web application.

At startup it loads configuration, reads the movie catalog and similarity
matrix, and serves the recommendation page and JSON API under a suture
supervisor tree. A missing or corrupt artifact stops startup with a message
naming both files; there is no degraded mode.

# Startup Order

 1. .env file (optional) and Koanf configuration
 2. zerolog initialization
 3. Catalog and similarity matrix
 4. Recommendation engine and TMDB metadata client
 5. Chi router, then the supervisor tree (HTTP server and cache maintenance)

# Example Usage

	cinematch-artifacts build -movies movies.csv -similarity similarity.csv -out .
	export TMDB_API_KEY=your-key
	./server

SIGINT and SIGTERM stop the tree; the HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT before exiting.
*/
package main
