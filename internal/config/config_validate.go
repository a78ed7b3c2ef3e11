// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"time"
)

// Bounds enforced by Validate.
const (
	minRecommendK = 1
	maxRecommendK = 50

	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour

	maxMetadataCacheSize = 1_000_000
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateMetadata(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if c.Artifacts.CatalogPath == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.Artifacts.SimilarityPath == "" {
		return fmt.Errorf("SIMILARITY_PATH is required")
	}
	if c.Artifacts.CatalogPath == c.Artifacts.SimilarityPath {
		return fmt.Errorf("CATALOG_PATH and SIMILARITY_PATH must be different files")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.K < minRecommendK || c.Recommend.K > maxRecommendK {
		return fmt.Errorf("RECOMMEND_K must be between %d and %d", minRecommendK, maxRecommendK)
	}
	return nil
}

// validateMetadata validates the TMDB client settings. An empty API key is
// accepted; every lookup then degrades to placeholder details.
func (c *Config) validateMetadata() error {
	m := c.Metadata
	if err := validateHTTPURL(m.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(m.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if m.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive")
	}
	if m.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be at least 1")
	}
	if m.CacheSize < 1 || m.CacheSize > maxMetadataCacheSize {
		return fmt.Errorf("METADATA_CACHE_SIZE must be between 1 and %d", maxMetadataCacheSize)
	}
	if m.CacheTTL <= 0 {
		return fmt.Errorf("METADATA_CACHE_TTL must be positive")
	}
	if m.CachePath != "" && m.CacheDiskTTL <= 0 {
		return fmt.Errorf("METADATA_CACHE_DISK_TTL must be positive when METADATA_CACHE_PATH is set")
	}
	if m.CacheGCPeriod <= 0 {
		return fmt.Errorf("METADATA_CACHE_GC_INTERVAL must be positive")
	}
	if m.BreakerTimeout <= 0 {
		return fmt.Errorf("TMDB_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any allowed origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
