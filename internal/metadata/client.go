// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Cache type labels for metrics.
const (
	cacheTypeMemory     = "memory"
	cacheTypePersistent = "persistent"
)

// Fallback reasons recorded in metrics and logs.
const (
	reasonNoAPIKey    = "no_api_key"
	reasonRateLimit   = "rate_limit"
	reasonCircuitOpen = "circuit_open"
	reasonTimeout     = "timeout"
	reasonTransport   = "transport"
	reasonStatus      = "status"
	reasonDecode      = "decode"
)

// Client fetches movie details from TMDB with caching and resilience.
// It is safe for concurrent use.
type Client struct {
	cfg     Config
	logger  zerolog.Logger
	api     *breakerAPI
	limiter *rate.Limiter

	memory     *cache.LRU[int64, Details]
	persistent Store
}

// NewClient creates a metadata client. When cfg.PersistentCachePath is set a
// BadgerDB store is opened there; Close releases it.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *Config, logger zerolog.Logger) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	c := cfg.withDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}

	var store Store
	if c.PersistentCachePath != "" {
		bs, err := OpenBadgerStore(c.PersistentCachePath, c.PersistentCacheTTL)
		if err != nil {
			return nil, err
		}
		store = bs
	}

	return newClient(c, store, logger), nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newClient(c Config, store Store, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "metadata").Logger()

	if c.APIKey == "" {
		logger.Warn().Msg("No TMDB API key configured, posters, years and ratings will show placeholders")
	}

	api := newTMDBAPI(c.BaseURL, c.APIKey, c.Language, c.Timeout)

	return &Client{
		cfg:        c,
		logger:     logger,
		api:        newBreakerAPI(api, c.BreakerTimeout, logger),
		limiter:    rate.NewLimiter(rate.Limit(c.RequestsPerSecond), c.Burst),
		memory:     cache.NewLRU[int64, Details](c.CacheSize, c.CacheTTL),
		persistent: store,
	}
}

// FetchDetails returns display details for externalID. It never fails:
// every error resolves to FallbackDetails.
func (c *Client) FetchDetails(ctx context.Context, externalID int64) Details {
	if d, ok := c.memory.Get(externalID); ok {
		metrics.RecordCacheLookup(cacheTypeMemory, true)
		return d
	}
	metrics.RecordCacheLookup(cacheTypeMemory, false)

	if d, ok := c.lookupPersistent(ctx, externalID); ok {
		c.memory.Add(externalID, d)
		return d
	}

	d, reason, err := c.fetch(ctx, externalID)
	metrics.RecordMetadataFetch(reason)
	if reason != "" {
		evt := c.logger.Warn().Int64("external_id", externalID).Str("reason", reason)
		if err != nil {
			evt = evt.Err(err)
		}
		evt.Msg("Metadata lookup failed, using placeholders")
		return FallbackDetails()
	}

	c.memory.Add(externalID, d)
	metrics.SetCacheSize(cacheTypeMemory, c.memory.Len())
	c.storePersistent(ctx, externalID, d)

	return d
}

// fetch performs one rate-limited, breaker-protected upstream call.
// A non-empty reason means the lookup failed.
func (c *Client) fetch(ctx context.Context, externalID int64) (Details, string, error) {
	if c.cfg.APIKey == "" {
		return Details{}, reasonNoAPIKey, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return Details{}, reasonRateLimit, err
	}

	start := time.Now()
	movie, err := c.api.GetMovie(ctx, externalID)
	metrics.ObserveMetadataLatency(time.Since(start))
	if err != nil {
		return Details{}, classify(err), err
	}

	return detailsFromMovie(movie, c.cfg.ImageBaseURL), "", nil
}

// classify maps an upstream error to a fallback reason.
func classify(err error) string {
	var se *StatusError
	var netErr net.Error
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return reasonCircuitOpen
	case errors.As(err, &se):
		return reasonStatus
	case errors.Is(err, errDecode):
		return reasonDecode
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return reasonTimeout
	default:
		return reasonTransport
	}
}

func (c *Client) lookupPersistent(ctx context.Context, externalID int64) (Details, bool) {
	if c.persistent == nil {
		return Details{}, false
	}

	d, ok, err := c.persistent.Get(ctx, externalID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("external_id", externalID).Msg("Persistent metadata cache read failed")
		return Details{}, false
	}
	metrics.RecordCacheLookup(cacheTypePersistent, ok)
	return d, ok
}

func (c *Client) storePersistent(ctx context.Context, externalID int64, d Details) {
	if c.persistent == nil {
		return
	}
	if err := c.persistent.Set(ctx, externalID, d); err != nil {
		c.logger.Warn().Err(err).Int64("external_id", externalID).Msg("Persistent metadata cache write failed")
	}
}

// BreakerState returns the circuit breaker state: closed, half-open or open.
func (c *Client) BreakerState() string {
	return c.api.State()
}

// HasAPIKey reports whether upstream lookups are enabled.
func (c *Client) HasAPIKey() bool {
	return c.cfg.APIKey != ""
}

// PersistentStore returns the persistent store, or nil when disabled.
func (c *Client) PersistentStore() Store {
	return c.persistent
}

// CacheStats returns the in-memory cache counters.
func (c *Client) CacheStats() cache.LRUStats {
	return c.memory.Stats()
}

// PruneMemory removes expired in-memory entries and returns how many were removed.
func (c *Client) PruneMemory() int {
	removed := c.memory.CleanupExpired()
	metrics.SetCacheSize(cacheTypeMemory, c.memory.Len())
	return removed
}

// Close releases the persistent store.
func (c *Client) Close() error {
	if c.persistent == nil {
		return nil
	}
	if err := c.persistent.Close(); err != nil {
		return fmt.Errorf("close metadata store: %w", err)
	}
	return nil
}
