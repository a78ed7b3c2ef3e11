// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

const idleTimeout = 60 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("catalog_path", cfg.Artifacts.CatalogPath).
		Str("similarity_path", cfg.Artifacts.SimilarityPath).
		Int("k", cfg.Recommend.K).
		Bool("metadata_api_key", cfg.Metadata.HasAPIKey()).
		Msg("Starting Cinematch")

	start := time.Now()
	cat, err := catalog.Load(cfg.Artifacts.CatalogPath, cfg.Artifacts.SimilarityPath)
	if err != nil {
		logging.Fatal().Err(err).Msg(artifactErrorMessage(err, &cfg.Artifacts))
	}
	duplicates := cat.DuplicateTitles()
	metrics.SetCatalogInfo(cat.Len(), len(duplicates), time.Since(start))

	event := logging.Info().Int("movies", cat.Len()).Dur("load_time", time.Since(start))
	if len(duplicates) > 0 {
		event = logging.Warn().Int("movies", cat.Len()).Strs("duplicate_titles", duplicates)
	}
	event.Msg("Catalog loaded")

	engine, err := recommend.NewEngine(&recommend.Config{K: cfg.Recommend.K}, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	client, err := metadata.NewClient(metadataConfig(&cfg.Metadata), logging.WithComponent("metadata"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create metadata client")
	}
	defer func() {
		if err := client.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing metadata cache")
		}
	}()
	if !client.HasAPIKey() {
		logging.Warn().Msg("No TMDB API key configured; posters and ratings will use placeholders")
	}

	handler, err := api.NewHandler(cat, engine, client, logging.WithComponent("api"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create handlers")
	}

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict it")
	}
	mw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, mw, api.RouterConfig{RequestTimeout: cfg.Server.Timeout})

	server := newHTTPServer(&cfg.Server, router.SetupChi())

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + time.Second,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout,
		logging.With().Str("addr", server.Addr).Logger()))
	tree.AddMaintenanceService(services.NewCacheMaintenanceService(client, cfg.Metadata.CacheGCPeriod,
		logging.WithComponent("supervisor")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Serving movie recommendations")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// metadataConfig maps the loaded settings onto the TMDB client.
func metadataConfig(m *config.MetadataConfig) *metadata.Config {
	return &metadata.Config{
		APIKey:              m.APIKey,
		BaseURL:             m.BaseURL,
		ImageBaseURL:        m.ImageBaseURL,
		Language:            m.Language,
		Timeout:             m.Timeout,
		RequestsPerSecond:   m.RequestsPerSecond,
		Burst:               m.Burst,
		CacheSize:           m.CacheSize,
		CacheTTL:            m.CacheTTL,
		PersistentCachePath: m.CachePath,
		PersistentCacheTTL:  m.CacheDiskTTL,
		BreakerTimeout:      m.BreakerTimeout,
	}
}

func newHTTPServer(s *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              s.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: s.Timeout,
		ReadTimeout:       s.Timeout,
		WriteTimeout:      s.Timeout + 5*time.Second,
		IdleTimeout:       idleTimeout,
	}
}

// artifactErrorMessage builds the startup failure shown when artifacts
// cannot be loaded.
func artifactErrorMessage(err error, a *config.ArtifactsConfig) string {
	switch {
	case errors.Is(err, catalog.ErrArtifactMissing):
		return fmt.Sprintf("Model files not found. Please ensure %s and %s are present.", a.CatalogPath, a.SimilarityPath)
	case errors.Is(err, catalog.ErrArtifactCorrupt):
		return fmt.Sprintf("Model files are invalid. Rebuild %s and %s with cinematch-artifacts.", a.CatalogPath, a.SimilarityPath)
	default:
		return "Failed to load model files"
	}
}
