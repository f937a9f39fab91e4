// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateDataset,
		c.validateRecommend,
		c.validateAvailability,
		c.validateEvents,
		c.validateSecurity,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, disabled")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateDataset validates dataset locations and the watcher
func (c *Config) validateDataset() error {
	switch c.Dataset.Loader {
	case "csv", "duckdb":
	default:
		return fmt.Errorf("DATASET_LOADER must be one of: csv, duckdb")
	}
	if c.Dataset.MoviesPath == "" {
		return fmt.Errorf("MOVIES_PATH is required")
	}
	if c.Dataset.RatingsPath == "" {
		return fmt.Errorf("RATINGS_PATH is required")
	}
	if c.Dataset.Watch && c.Dataset.WatchInterval < time.Second {
		return fmt.Errorf("DATASET_WATCH_INTERVAL must be at least 1s when DATASET_WATCH=true")
	}
	return nil
}

// validateRecommend validates engine limits and caching
func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.DefaultN < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_N must be positive")
	}
	if r.MaxN < r.DefaultN {
		return fmt.Errorf("RECOMMEND_MAX_N (%d) must be >= RECOMMEND_DEFAULT_N (%d)", r.MaxN, r.DefaultN)
	}
	if r.MinYear < 0 || r.MaxYear < 0 {
		return fmt.Errorf("RECOMMEND_MIN_YEAR and RECOMMEND_MAX_YEAR must be non-negative")
	}
	if r.MinYear != 0 && r.MaxYear != 0 && r.MinYear > r.MaxYear {
		return fmt.Errorf("RECOMMEND_MIN_YEAR (%d) must be <= RECOMMEND_MAX_YEAR (%d)", r.MinYear, r.MaxYear)
	}
	if r.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_REQUEST_TIMEOUT must be positive")
	}
	if r.SimilarityWorkers < 0 {
		return fmt.Errorf("RECOMMEND_SIMILARITY_WORKERS must be non-negative")
	}
	if r.MinSharedRaters < 1 {
		return fmt.Errorf("RECOMMEND_MIN_SHARED_RATERS must be positive")
	}
	if r.CacheEnabled {
		if r.CacheTTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when caching is enabled")
		}
		if r.CacheSize < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_SIZE must be positive when caching is enabled")
		}
	}
	return nil
}

var countryCodePattern = regexp.MustCompile(`^[a-z]{2}$`)

// validateAvailability validates the streaming availability client (only if enabled)
func (c *Config) validateAvailability() error {
	a := &c.Availability
	if !a.Enabled {
		return nil
	}
	if err := validateHTTPURL(a.BaseURL, "AVAILABILITY_BASE_URL"); err != nil {
		return fmt.Errorf("AVAILABILITY_BASE_URL is invalid: %w", err)
	}
	if a.APIKey == "" {
		return fmt.Errorf("RAPIDAPI_KEY is required when AVAILABILITY_ENABLED=true")
	}
	if len(a.Countries) == 0 {
		return fmt.Errorf("AVAILABILITY_COUNTRIES must list at least one country")
	}
	for _, country := range a.Countries {
		if !countryCodePattern.MatchString(country) {
			return fmt.Errorf("AVAILABILITY_COUNTRIES entry %q must be a lowercase two-letter code", country)
		}
	}
	if a.Timeout <= 0 || a.RequestBudget <= 0 {
		return fmt.Errorf("AVAILABILITY_TIMEOUT and AVAILABILITY_REQUEST_BUDGET must be positive")
	}
	if a.RatePerSecond <= 0 || a.Burst < 1 {
		return fmt.Errorf("AVAILABILITY_RATE_PER_SECOND and AVAILABILITY_BURST must be positive")
	}
	if a.MaxConcurrency < 1 {
		return fmt.Errorf("AVAILABILITY_MAX_CONCURRENCY must be positive")
	}
	if a.CacheTTL <= 0 {
		return fmt.Errorf("AVAILABILITY_CACHE_TTL must be positive")
	}
	return nil
}

// validateEvents validates the event router settings
func (c *Config) validateEvents() error {
	if c.Events.RetryCount < 0 {
		return fmt.Errorf("EVENTS_RETRY_COUNT must be non-negative")
	}
	if c.Events.RetryInterval <= 0 || c.Events.CloseTimeout <= 0 {
		return fmt.Errorf("EVENTS_RETRY_INTERVAL and EVENTS_CLOSE_TIMEOUT must be positive")
	}
	return nil
}

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}
