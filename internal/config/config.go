// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Logging      LoggingConfig      `koanf:"logging"`
	Dataset      DatasetConfig      `koanf:"dataset"`
	Recommend    RecommendConfig    `koanf:"recommend"`
	Availability AvailabilityConfig `koanf:"availability"`
	Events       EventsConfig       `koanf:"events"`
	Security     SecurityConfig     `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
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

// DatasetConfig locates the MovieLens files and controls reloading.
type DatasetConfig struct {
	// Loader selects the ingestion engine: csv or duckdb.
	Loader string `koanf:"loader"`

	MoviesPath  string `koanf:"movies_path"`
	RatingsPath string `koanf:"ratings_path"`
	LinksPath   string `koanf:"links_path"` // optional

	// Watch polls the files and reloads the snapshot when they change.
	Watch         bool          `koanf:"watch"`
	WatchInterval time.Duration `koanf:"watch_interval"`

	// Warm builds both similarity matrices before a snapshot goes live.
	Warm bool `koanf:"warm"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	DefaultN          int           `koanf:"default_n"`
	MaxN              int           `koanf:"max_n"`
	MinYear           int           `koanf:"min_year"` // 0 = derived from the dataset
	MaxYear           int           `koanf:"max_year"` // 0 = derived from the dataset
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	SimilarityWorkers int           `koanf:"similarity_workers"` // 0 = GOMAXPROCS
	MinSharedRaters   int           `koanf:"min_shared_raters"`
	CacheEnabled      bool          `koanf:"cache_enabled"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	CacheSize         int           `koanf:"cache_size"`
}

// AvailabilityConfig holds streaming availability enrichment settings.
// Enrichment is opt-in because it requires a RapidAPI key.
type AvailabilityConfig struct {
	Enabled   bool     `koanf:"enabled"`
	BaseURL   string   `koanf:"base_url"`
	APIKey    string   `koanf:"api_key"`
	Host      string   `koanf:"host"`
	Countries []string `koanf:"countries"`

	// Timeout bounds one upstream HTTP request.
	Timeout time.Duration `koanf:"timeout"`

	// RequestBudget bounds all lookups for one API request.
	RequestBudget time.Duration `koanf:"request_budget"`

	RatePerSecond  float64 `koanf:"rate_per_second"`
	Burst          int     `koanf:"burst"`
	MaxRetries     int     `koanf:"max_retries"`
	MaxConcurrency int     `koanf:"max_concurrency"`

	// CachePath is the BadgerDB directory. Empty keeps the cache in memory.
	CachePath string        `koanf:"cache_path"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// EventsConfig holds settings for the in-process event router.
type EventsConfig struct {
	RetryCount    int           `koanf:"retry_count"`
	RetryInterval time.Duration `koanf:"retry_interval"`
	CloseTimeout  time.Duration `koanf:"close_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
