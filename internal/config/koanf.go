// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is the dotenv file read by LoadDotEnv when no paths are given.
const DotEnvFile = ".env"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Artifacts: ArtifactsConfig{
			CatalogPath:    "movie_list.json",
			SimilarityPath: "similarity.bin",
		},
		Recommend: RecommendConfig{
			K: 5,
		},
		Metadata: MetadataConfig{
			APIKey:            "",
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			Language:          "en-US",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 20,
			Burst:             5,
			CacheSize:         1000,
			CacheTTL:          time.Hour,
			CachePath:         "", // memory-only unless set
			CacheDiskTTL:      24 * time.Hour,
			CacheGCPeriod:     10 * time.Minute,
			BreakerTimeout:    2 * time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration from multiple sources with the following precedence
// (highest to lowest):
//
//  1. Environment variables
//  2. Config file (CONFIG_PATH or the first of DefaultConfigPaths that exists)
//  3. Built-in defaults
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// API_KEY and TMDB_API_KEY share a destination; the explicit name wins.
	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		if err := k.Set("metadata.api_key", key); err != nil {
			return nil, fmt.Errorf("failed to set metadata.api_key: %w", err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv exports variables from dotenv files into the process environment.
// Variables already set are left untouched and missing files are skipped.
// With no arguments it reads DotEnvFile from the working directory.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DotEnvFile}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Artifacts
	"catalog_path":    "artifacts.catalog_path",
	"similarity_path": "artifacts.similarity_path",

	// Recommender
	"recommend_k": "recommend.k",

	// Metadata. API_KEY is the name used by existing .env files.
	"api_key":                    "metadata.api_key",
	"tmdb_api_key":               "metadata.api_key",
	"tmdb_base_url":              "metadata.base_url",
	"tmdb_image_base_url":        "metadata.image_base_url",
	"tmdb_language":              "metadata.language",
	"tmdb_timeout":               "metadata.timeout",
	"tmdb_requests_per_second":   "metadata.requests_per_second",
	"tmdb_burst":                 "metadata.burst",
	"tmdb_breaker_timeout":       "metadata.breaker_timeout",
	"metadata_cache_size":        "metadata.cache_size",
	"metadata_cache_ttl":         "metadata.cache_ttl",
	"metadata_cache_path":        "metadata.cache_path",
	"metadata_cache_disk_ttl":    "metadata.cache_disk_ttl",
	"metadata_cache_gc_interval": "metadata.cache_gc_interval",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - SIMILARITY_PATH -> artifacts.similarity_path
//   - API_KEY -> metadata.api_key
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
