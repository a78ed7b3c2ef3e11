// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultBaseURL            = "https://api.themoviedb.org/3"
	DefaultImageBaseURL       = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage           = "en-US"
	DefaultTimeout            = 10 * time.Second
	DefaultRequestsPerSecond  = 20.0
	DefaultBurst              = 5
	DefaultCacheSize          = 1000
	DefaultCacheTTL           = time.Hour
	DefaultPersistentCacheTTL = 24 * time.Hour
	DefaultBreakerTimeout     = 2 * time.Minute
)

// Config contains TMDB client settings.
type Config struct {
	// APIKey is the TMDB v3 API key. Empty disables upstream calls.
	APIKey string

	// BaseURL is the TMDB API root.
	BaseURL string

	// ImageBaseURL is prefixed to poster paths.
	ImageBaseURL string

	// Language is sent as the language query parameter.
	Language string

	// Timeout bounds each upstream request.
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the outbound token bucket.
	RequestsPerSecond float64
	Burst             int

	// CacheSize and CacheTTL configure the in-memory cache.
	CacheSize int
	CacheTTL  time.Duration

	// PersistentCachePath enables the BadgerDB cache when non-empty.
	PersistentCachePath string
	PersistentCacheTTL  time.Duration

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration
}

// withDefaults returns a copy with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = DefaultImageBaseURL
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.PersistentCacheTTL <= 0 {
		c.PersistentCacheTTL = DefaultPersistentCacheTTL
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = DefaultBreakerTimeout
	}
	return c
}

// validate checks the URLs after defaults are applied.
func (c *Config) validate() error {
	for name, raw := range map[string]string{"base_url": c.BaseURL, "image_base_url": c.ImageBaseURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("metadata %s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("metadata %s must be http or https, got %q", name, raw)
		}
		if u.Host == "" {
			return errors.New("metadata " + name + " has no host")
		}
	}
	return nil
}
