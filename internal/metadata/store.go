// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metadata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// detailsKeyPrefix namespaces cached details in BadgerDB.
const detailsKeyPrefix = "tmdb:movie:"

// gcDiscardRatio is the value-log discard ratio passed to RunValueLogGC.
const gcDiscardRatio = 0.5

// ErrStoreClosed is returned by a closed store.
var ErrStoreClosed = errors.New("metadata store closed")

// Store is a persistent details cache keyed by external id.
type Store interface {
	// Get returns cached details and whether they were found.
	Get(ctx context.Context, id int64) (Details, bool, error)

	// Set stores details with the store's TTL.
	Set(ctx context.Context, id int64, d Details) error

	// Len returns the number of live entries.
	Len() (int, error)

	// Close releases the store.
	Close() error
}

// BadgerStore implements Store using BadgerDB with per-entry TTL.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerStore opens or creates a BadgerDB directory at path.
// An empty path opens an in-memory database.
func OpenBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for metadata cache: %w", err)
	}

	return NewBadgerStoreFromDB(db, ttl), nil
}

// NewBadgerStoreFromDB creates a store from an existing BadgerDB connection.
func NewBadgerStoreFromDB(db *badger.DB, ttl time.Duration) *BadgerStore {
	if ttl <= 0 {
		ttl = DefaultPersistentCacheTTL
	}
	return &BadgerStore{db: db, ttl: ttl}
}

func detailsKey(id int64) []byte {
	return []byte(detailsKeyPrefix + strconv.FormatInt(id, 10))
}

// Get retrieves cached details by external id.
func (s *BadgerStore) Get(_ context.Context, id int64) (Details, bool, error) {
	var d Details

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(detailsKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &d)
		})
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return Details{}, false, nil
	case errors.Is(err, badger.ErrDBClosed):
		return Details{}, false, ErrStoreClosed
	case err != nil:
		return Details{}, false, fmt.Errorf("get cached details %d: %w", id, err)
	}
	return d, true, nil
}

// Set stores details with the store TTL.
func (s *BadgerStore) Set(_ context.Context, id int64, d Details) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(detailsKey(id), data).WithTTL(s.ttl))
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrStoreClosed
	}
	if err != nil {
		return fmt.Errorf("set cached details %d: %w", id, err)
	}
	return nil
}

// Len counts live entries.
func (s *BadgerStore) Len() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(detailsKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC runs value-log garbage collection until nothing is rewritten.
// It reports whether any file was rewritten.
func (s *BadgerStore) RunGC() (bool, error) {
	rewritten := false
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return rewritten, nil
		}
		if err != nil {
			return rewritten, fmt.Errorf("run value log GC: %w", err)
		}
		rewritten = true
	}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
