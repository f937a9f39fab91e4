// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Dataset: DatasetConfig{
			Loader:        "csv",
			MoviesPath:    "data/movies.csv",
			RatingsPath:   "data/ratings.csv",
			LinksPath:     "data/links.csv",
			Watch:         false,
			WatchInterval: 30 * time.Second,
			Warm:          false,
		},
		Recommend: RecommendConfig{
			DefaultN:          5,
			MaxN:              10,
			MinYear:           0, // 0 = earliest known year
			MaxYear:           0, // 0 = latest known year
			RequestTimeout:    30 * time.Second,
			SimilarityWorkers: 0,
			MinSharedRaters:   10,
			CacheEnabled:      true,
			CacheTTL:          10 * time.Minute,
			CacheSize:         1000,
		},
		Availability: AvailabilityConfig{
			Enabled:        false, // Requires a RapidAPI key
			BaseURL:        "https://streaming-availability.p.rapidapi.com",
			Host:           "streaming-availability.p.rapidapi.com",
			Countries:      []string{"de", "us"},
			Timeout:        10 * time.Second,
			RequestBudget:  5 * time.Second,
			RatePerSecond:  5,
			Burst:          5,
			MaxRetries:     3,
			MaxConcurrency: 4,
			CachePath:      "",
			CacheTTL:       24 * time.Hour,
		},
		Events: EventsConfig{
			RetryCount:    3,
			RetryInterval: time.Second,
			CloseTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
//
// Loading order (later sources override earlier):
//  1. Built-in defaults
//  2. Config file (if found)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Step 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Step 2: Load config file if it exists
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Step 3: Load environment variables
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns empty string if no config file is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths that should be parsed as comma-separated slices
// when provided as strings (e.g., from environment variables).
var sliceConfigPaths = []string{
	"security.cors_origins",
	"availability.countries",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"dataset_loader":         "dataset.loader",
	"movies_path":            "dataset.movies_path",
	"ratings_path":           "dataset.ratings_path",
	"links_path":             "dataset.links_path",
	"dataset_watch":          "dataset.watch",
	"dataset_watch_interval": "dataset.watch_interval",
	"dataset_warm":           "dataset.warm",

	"recommend_default_n":          "recommend.default_n",
	"recommend_max_n":              "recommend.max_n",
	"recommend_min_year":           "recommend.min_year",
	"recommend_max_year":           "recommend.max_year",
	"recommend_request_timeout":    "recommend.request_timeout",
	"recommend_similarity_workers": "recommend.similarity_workers",
	"recommend_min_shared_raters":  "recommend.min_shared_raters",
	"recommend_cache_enabled":      "recommend.cache_enabled",
	"recommend_cache_ttl":          "recommend.cache_ttl",
	"recommend_cache_size":         "recommend.cache_size",

	"availability_enabled":         "availability.enabled",
	"availability_base_url":        "availability.base_url",
	"rapidapi_key":                 "availability.api_key",
	"availability_api_key":         "availability.api_key",
	"availability_host":            "availability.host",
	"availability_countries":       "availability.countries",
	"availability_timeout":         "availability.timeout",
	"availability_request_budget":  "availability.request_budget",
	"availability_rate_per_second": "availability.rate_per_second",
	"availability_burst":           "availability.burst",
	"availability_max_retries":     "availability.max_retries",
	"availability_max_concurrency": "availability.max_concurrency",
	"availability_cache_path":      "availability.cache_path",
	"availability_cache_ttl":       "availability.cache_ttl",

	"events_retry_count":    "events.retry_count",
	"events_retry_interval": "events.retry_interval",
	"events_close_timeout":  "events.close_timeout",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc transforms environment variable names to koanf paths.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// cannot pollute the config.
	return ""
}
