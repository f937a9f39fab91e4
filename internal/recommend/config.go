// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits bounds the query parameters.
	Limits LimitsConfig `json:"limits"`

	// Similarity controls similarity matrix computation.
	Similarity SimilarityConfig `json:"similarity"`

	// Correlation contains parameters for the Pearson strategy.
	Correlation CorrelationConfig `json:"correlation"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig bounds query parameters.
type LimitsConfig struct {
	// DefaultN is used when a query leaves N unset. Default: 5.
	DefaultN int `json:"default_n"`

	// MaxN caps N. Larger values are clamped. Default: 10.
	MaxN int `json:"max_n"`

	// MinYear and MaxYear override the default inclusive year range. Zero
	// takes the earliest or latest known year of the active snapshot.
	// Default: 0 (derived).
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`

	// RequestTimeout bounds a single uncached recommendation. Default: 30s.
	RequestTimeout time.Duration `json:"request_timeout"`
}

// SimilarityConfig controls similarity matrix computation.
type SimilarityConfig struct {
	// Workers is the number of goroutines used to fill a similarity matrix.
	// Zero uses GOMAXPROCS.
	Workers int `json:"workers"`
}

// CorrelationConfig contains parameters for the Pearson strategy.
type CorrelationConfig struct {
	// MinSharedRaters is the number of users who must have rated both the
	// reference and the candidate. Default: 10.
	MinSharedRaters int `json:"min_shared_raters"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active. Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live. Default: 10m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses. Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultN:       5,
			MaxN:           10,
			RequestTimeout: 30 * time.Second,
		},
		Correlation: CorrelationConfig{
			MinSharedRaters: 10,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be positive, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n must be >= limits.default_n, got %d < %d", c.Limits.MaxN, c.Limits.DefaultN)
	}
	if c.Limits.MinYear < 0 || c.Limits.MaxYear < 0 {
		return fmt.Errorf("limits.min_year and limits.max_year must be non-negative, got %d and %d", c.Limits.MinYear, c.Limits.MaxYear)
	}
	if c.Limits.MinYear != 0 && c.Limits.MaxYear != 0 && c.Limits.MinYear > c.Limits.MaxYear {
		return fmt.Errorf("limits.min_year must be <= limits.max_year, got %d > %d", c.Limits.MinYear, c.Limits.MaxYear)
	}
	if c.Limits.RequestTimeout <= 0 {
		return fmt.Errorf("limits.request_timeout must be positive, got %v", c.Limits.RequestTimeout)
	}
	if c.Similarity.Workers < 0 {
		return fmt.Errorf("similarity.workers must be non-negative, got %d", c.Similarity.Workers)
	}
	if c.Correlation.MinSharedRaters < 1 {
		return fmt.Errorf("correlation.min_shared_raters must be positive, got %d", c.Correlation.MinSharedRaters)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration. All fields are values.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
