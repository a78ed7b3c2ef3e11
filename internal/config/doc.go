// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config loads and validates Cinematch configuration.

# Configuration Sources

Values are layered with Koanf, later sources overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, or the first of DefaultConfigPaths that exists
 3. Mapped environment variables

LoadDotEnv can be called first to export a .env file into the environment.
Existing variables are never overwritten by the file.

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8501)
  - HTTP_TIMEOUT: Per-request handler timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown deadline (default: 15s)

Artifacts:
  - CATALOG_PATH: Movie list JSON (default: movie_list.json)
  - SIMILARITY_PATH: Binary similarity matrix (default: similarity.bin)

Recommender:
  - RECOMMEND_K: Neighbours per query, 1..50 (default: 5)

Metadata (TMDB):
  - API_KEY or TMDB_API_KEY: TMDB v3 key; TMDB_API_KEY wins when both are set
  - TMDB_BASE_URL, TMDB_IMAGE_BASE_URL, TMDB_LANGUAGE
  - TMDB_TIMEOUT: Per-request timeout (default: 10s)
  - TMDB_REQUESTS_PER_SECOND, TMDB_BURST: Outbound rate limit (default: 20/s, burst 5)
  - TMDB_BREAKER_TIMEOUT: Open circuit duration (default: 2m)
  - METADATA_CACHE_SIZE, METADATA_CACHE_TTL: In-memory cache (default: 1000, 1h)
  - METADATA_CACHE_PATH: BadgerDB directory; empty keeps the cache in memory only
  - METADATA_CACHE_DISK_TTL: Persistent entry lifetime (default: 24h)
  - METADATA_CACHE_GC_INTERVAL: Cache maintenance period (default: 10m)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: Per-IP limit (default: 100 per 1m)
  - DISABLE_RATE_LIMIT: Turn the limiter off

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include file and line (default: false)

# Usage

	if err := config.LoadDotEnv(); err != nil {
	    log.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
