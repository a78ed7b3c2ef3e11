// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Metadata  MetadataConfig  `koanf:"metadata"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ArtifactsConfig locates the precomputed catalog and similarity matrix.
type ArtifactsConfig struct {
	CatalogPath    string `koanf:"catalog_path"`
	SimilarityPath string `koanf:"similarity_path"`
}

// RecommendConfig holds recommender settings.
type RecommendConfig struct {
	// K is the number of neighbours returned per query.
	K int `koanf:"k"`
}

// MetadataConfig holds TMDB client settings.
type MetadataConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	CacheSize         int           `koanf:"cache_size"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`

	// CachePath enables the persistent BadgerDB cache when non-empty.
	CachePath     string        `koanf:"cache_path"`
	CacheDiskTTL  time.Duration `koanf:"cache_disk_ttl"`
	CacheGCPeriod time.Duration `koanf:"cache_gc_interval"`

	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds inbound request controls.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// HasAPIKey reports whether a TMDB key is configured.
func (m MetadataConfig) HasAPIKey() bool {
	return m.APIKey != ""
}
