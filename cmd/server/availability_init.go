// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/availability"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
)

// AvailabilityComponents holds the streaming availability chain:
// BadgerDB cache in front of a circuit breaker in front of the HTTP client.
type AvailabilityComponents struct {
	enricher *availability.Enricher
	breaker  *availability.BreakerLookup
	cache    *badger.DB
}

// initAvailability builds the chain when enabled. Disabled returns empty
// components whose methods are safe to call.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initAvailability(cfg *config.Config, logger zerolog.Logger) (*AvailabilityComponents, error) {
	ac := cfg.Availability
	if !ac.Enabled {
		logger.Info().Msg("Streaming availability disabled (AVAILABILITY_ENABLED=false)")
		return &AvailabilityComponents{}, nil
	}

	client := availability.NewClient(availability.ClientConfig{
		BaseURL:       ac.BaseURL,
		APIKey:        ac.APIKey,
		Host:          ac.Host,
		Timeout:       ac.Timeout,
		RatePerSecond: ac.RatePerSecond,
		Burst:         ac.Burst,
		MaxRetries:    ac.MaxRetries,
	})
	breaker := availability.NewBreakerLookup("streaming-availability", client)

	db, err := availability.OpenCache(ac.CachePath)
	if err != nil {
		return nil, err
	}
	cached := availability.NewCachedLookup(db, breaker, ac.CacheTTL)

	logger.Info().
		Strs("countries", ac.Countries).
		Str("cache_path", ac.CachePath).
		Dur("cache_ttl", ac.CacheTTL).
		Msg("Streaming availability enabled")

	return &AvailabilityComponents{
		enricher: availability.NewEnricher(cached, ac.Countries, ac.MaxConcurrency, logger),
		breaker:  breaker,
		cache:    db,
	}, nil
}

// Enricher returns nil when availability is disabled. The explicit nil keeps
// the interface value nil rather than holding a nil pointer.
func (c *AvailabilityComponents) Enricher() api.Enricher {
	if c.enricher == nil {
		return nil
	}
	return c.enricher
}

// State reports the circuit breaker state for /health.
func (c *AvailabilityComponents) State() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State()
}

// Close releases the BadgerDB cache.
func (c *AvailabilityComponents) Close() {
	if c.cache == nil {
		return
	}
	if err := c.cache.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing availability cache")
	}
}
