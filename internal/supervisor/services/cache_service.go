// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/metrics"
)

const defaultMaintenanceInterval = 10 * time.Minute

// MetadataCache is the part of *metadata.Client the maintenance loop needs.
type MetadataCache interface {
	// PruneMemory drops expired in-memory entries.
	PruneMemory() int

	// PersistentStore returns the on-disk store, or nil.
	PersistentStore() metadata.Store
}

// ValueLogCollector is implemented by stores that reclaim disk space,
// such as *metadata.BadgerStore.
type ValueLogCollector interface {
	RunGC() (bool, error)
}

// CacheMaintenanceService periodically prunes the metadata cache.
//
// Every interval it removes expired in-memory details and, when the
// persistent store supports it, runs value-log garbage collection and
// republishes the persistent entry count.
type CacheMaintenanceService struct {
	cache    MetadataCache
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheMaintenanceService creates the maintenance loop for cache.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func NewCacheMaintenanceService(cache MetadataCache, interval time.Duration, logger zerolog.Logger) *CacheMaintenanceService {
	if interval <= 0 {
		interval = defaultMaintenanceInterval
	}
	return &CacheMaintenanceService{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", "cache-maintenance").Logger(),
		name:     "cache-maintenance",
	}
}

// Serve implements suture.Service.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("Cache maintenance running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce performs a single maintenance pass.
func (s *CacheMaintenanceService) RunOnce() {
	if removed := s.cache.PruneMemory(); removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("Pruned expired metadata")
	}

	store := s.cache.PersistentStore()
	if store == nil {
		return
	}

	if collector, ok := store.(ValueLogCollector); ok {
		rewritten, err := collector.RunGC()
		switch {
		case err != nil:
			metrics.RecordCacheGC("error")
			s.logger.Warn().Err(err).Msg("Metadata store GC failed")
		case rewritten:
			metrics.RecordCacheGC("rewritten")
		default:
			metrics.RecordCacheGC("noop")
		}
	}

	n, err := store.Len()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Counting persistent metadata failed")
		return
	}
	metrics.SetCacheSize("persistent", n)
}

// String identifies the service in supervisor events.
func (s *CacheMaintenanceService) String() string {
	return s.name
}
