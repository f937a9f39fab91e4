// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for CineMatch.

Configuration is loaded with Koanf v2 from three layered sources, each
overriding the previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, /etc/cinematch/config.yaml
 3. Environment variables, through an explicit name mapping

Unmapped environment variables are ignored.

# Configuration Structure

  - ServerConfig: HTTP listener and shutdown
  - LoggingConfig: zerolog level and format
  - DatasetConfig: MovieLens file paths, loader (csv or duckdb), hot reload
  - RecommendConfig: result limits, year range, similarity workers, caching
  - AvailabilityConfig: RapidAPI streaming lookups (opt-in)
  - EventsConfig: Watermill router retries
  - SecurityConfig: CORS and rate limiting

# Environment Variables

Selected variables:

  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, ENVIRONMENT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - DATASET_LOADER, MOVIES_PATH, RATINGS_PATH, LINKS_PATH
  - DATASET_WATCH, DATASET_WATCH_INTERVAL, DATASET_WARM
  - RECOMMEND_DEFAULT_N, RECOMMEND_MAX_N, RECOMMEND_MIN_YEAR, RECOMMEND_MAX_YEAR
  - AVAILABILITY_ENABLED, RAPIDAPI_KEY, AVAILABILITY_COUNTRIES (comma separated)
  - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

The complete mapping lives in envMappings.

# Usage Example

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("listening on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
*/
package config
