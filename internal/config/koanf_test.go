// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolateEnv unsets every variable Load reads and moves the test into an
// empty directory so no stray config.yaml or .env is picked up.
func isolateEnv(t *testing.T) string {
	t.Helper()
	keys := []string{ConfigPathEnvVar}
	for k := range envMappings {
		keys = append(keys, strings.ToUpper(k))
	}
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Setenv(k, v) // restores the value on cleanup
			if err := os.Unsetenv(k); err != nil {
				t.Fatalf("unset %s: %v", k, err)
			}
		}
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Artifacts.CatalogPath != "movie_list.json" {
		t.Errorf("Artifacts.CatalogPath = %q", cfg.Artifacts.CatalogPath)
	}
	if cfg.Artifacts.SimilarityPath != "similarity.bin" {
		t.Errorf("Artifacts.SimilarityPath = %q", cfg.Artifacts.SimilarityPath)
	}
	if cfg.Recommend.K != 5 {
		t.Errorf("Recommend.K = %d, want 5", cfg.Recommend.K)
	}
	if cfg.Metadata.APIKey != "" {
		t.Errorf("Metadata.APIKey should be empty by default")
	}
	if cfg.Metadata.CacheTTL != time.Hour {
		t.Errorf("Metadata.CacheTTL = %v, want 1h", cfg.Metadata.CacheTTL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"http_host", "server.host"},
		{"CATALOG_PATH", "artifacts.catalog_path"},
		{"SIMILARITY_PATH", "artifacts.similarity_path"},
		{"RECOMMEND_K", "recommend.k"},
		{"API_KEY", "metadata.api_key"},
		{"TMDB_API_KEY", "metadata.api_key"},
		{"METADATA_CACHE_PATH", "metadata.cache_path"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_CALLER", "logging.caller"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := isolateEnv(t)

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("config.yml found", func(t *testing.T) {
		path := filepath.Join(dir, "config.yml")
		if err := os.WriteFile(path, []byte("server: {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(path)

		if got := findConfigFile(); got != "config.yml" {
			t.Errorf("findConfigFile() = %q, want config.yml", got)
		}
	})

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		custom := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("server: {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, custom)

		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("CONFIG_PATH missing falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "nope.yaml"))

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoadEnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CATALOG_PATH", "/data/movies.json")
	t.Setenv("SIMILARITY_PATH", "/data/similarity.bin")
	t.Setenv("RECOMMEND_K", "10")
	t.Setenv("API_KEY", "dotenv-key")
	t.Setenv("TMDB_TIMEOUT", "3s")
	t.Setenv("METADATA_CACHE_SIZE", "50")
	t.Setenv("CORS_ORIGINS", " https://a.example , https://b.example,, ")
	t.Setenv("DISABLE_RATE_LIMIT", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_CALLER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Artifacts.CatalogPath != "/data/movies.json" || cfg.Artifacts.SimilarityPath != "/data/similarity.bin" {
		t.Errorf("Artifacts = %+v", cfg.Artifacts)
	}
	if cfg.Recommend.K != 10 {
		t.Errorf("Recommend.K = %d, want 10", cfg.Recommend.K)
	}
	if cfg.Metadata.APIKey != "dotenv-key" {
		t.Errorf("Metadata.APIKey = %q, want dotenv-key", cfg.Metadata.APIKey)
	}
	if cfg.Metadata.Timeout != 3*time.Second {
		t.Errorf("Metadata.Timeout = %v, want 3s", cfg.Metadata.Timeout)
	}
	if cfg.Metadata.CacheSize != 50 {
		t.Errorf("Metadata.CacheSize = %d, want 50", cfg.Metadata.CacheSize)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("RateLimitDisabled should be true")
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Caller {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadTMDBKeyPrecedence(t *testing.T) {
	isolateEnv(t)
	t.Setenv("API_KEY", "generic")
	t.Setenv("TMDB_API_KEY", "explicit")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Metadata.APIKey != "explicit" {
		t.Errorf("Metadata.APIKey = %q, want explicit", cfg.Metadata.APIKey)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolateEnv(t)

	content := `
server:
  port: 8080
  host: 127.0.0.1
artifacts:
  catalog_path: /srv/catalog.json
  similarity_path: /srv/similarity.bin
recommend:
  k: 7
metadata:
  api_key: from-file
  cache_ttl: 30m
security:
  cors_origins:
    - https://movies.example
logging:
  format: console
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Artifacts.CatalogPath != "/srv/catalog.json" {
		t.Errorf("CatalogPath = %q", cfg.Artifacts.CatalogPath)
	}
	if cfg.Recommend.K != 7 {
		t.Errorf("Recommend.K = %d, want 7", cfg.Recommend.K)
	}
	if cfg.Metadata.APIKey != "from-file" || cfg.Metadata.CacheTTL != 30*time.Minute {
		t.Errorf("Metadata = %+v", cfg.Metadata)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://movies.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q", cfg.Logging.Format)
	}
	if cfg.Metadata.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("Metadata.BaseURL = %q, want default", cfg.Metadata.BaseURL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolateEnv(t)

	content := "server:\n  port: 8080\nrecommend:\n  k: 7\n"
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want env value 9090", cfg.Server.Port)
	}
	if cfg.Recommend.K != 7 {
		t.Errorf("Recommend.K = %d, want file value 7", cfg.Recommend.K)
	}
}

func TestLoadValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"port out of range", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"k too large", map[string]string{"RECOMMEND_K": "51"}, "RECOMMEND_K"},
		{"k zero", map[string]string{"RECOMMEND_K": "0"}, "RECOMMEND_K"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad tmdb url", map[string]string{"TMDB_BASE_URL": "ftp://tmdb"}, "TMDB_BASE_URL"},
		{"same artifact path", map[string]string{"CATALOG_PATH": "x", "SIMILARITY_PATH": "x"}, "different"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolateEnv(t)

	content := "API_KEY=from-dotenv\nRECOMMEND_K=3\n"
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// Already-set variables win over the file.
	t.Setenv("RECOMMEND_K", "4")
	t.Cleanup(func() { os.Unsetenv("API_KEY") })

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Metadata.APIKey != "from-dotenv" {
		t.Errorf("Metadata.APIKey = %q, want from-dotenv", cfg.Metadata.APIKey)
	}
	if cfg.Recommend.K != 4 {
		t.Errorf("Recommend.K = %d, want 4", cfg.Recommend.K)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	dir := isolateEnv(t)

	if err := LoadDotEnv(filepath.Join(dir, "absent.env")); err != nil {
		t.Errorf("missing dotenv file should be skipped, got %v", err)
	}
}
