// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

const cacheKeyPrefix = "availability:"

var _ Lookup = (*CachedLookup)(nil)

// OpenCache opens the BadgerDB store backing CachedLookup. An empty path
// opens an in-memory store that is lost on restart.
func OpenCache(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for availability cache: %w", err)
	}
	return db, nil
}

// CachedLookup answers from BadgerDB and falls through to next on a miss.
// Successful answers, including "no offers", are stored with a TTL. Errors
// are never cached.
type CachedLookup struct {
	db   *badger.DB
	next Lookup
	ttl  time.Duration
}

// NewCachedLookup wraps next with a persistent cache.
func NewCachedLookup(db *badger.DB, next Lookup, ttl time.Duration) *CachedLookup {
	return &CachedLookup{db: db, next: next, ttl: ttl}
}

// Lookup implements Lookup.
func (c *CachedLookup) Lookup(ctx context.Context, externalID, country string) ([]Offer, error) {
	key := cacheKey(externalID, country)

	offers, found, err := c.get(key)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Availability cache read failed")
	}
	if found {
		metrics.RecordAvailabilityCache(true)
		return offers, nil
	}
	metrics.RecordAvailabilityCache(false)

	offers, err = c.next.Lookup(ctx, externalID, country)
	if err != nil {
		return nil, err
	}
	if err := c.set(key, offers); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Availability cache write failed")
	}
	return offers, nil
}

func (c *CachedLookup) get(key string) ([]Offer, bool, error) {
	var offers []Offer
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &offers)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached offers: %w", err)
	}
	if offers == nil {
		offers = []Offer{}
	}
	return offers, true, nil
}

func (c *CachedLookup) set(key string, offers []Offer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("marshal offers: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

func cacheKey(externalID, country string) string {
	return cacheKeyPrefix + country + ":" + externalID
}
