// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with promauto on the default registry at package
initialization and exposed by the API router at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limiter rejections (counter)

Recommendation Metrics:
  - recommendation_requests_total: Requests by strategy and outcome (counter)
    Labels: strategy (popularity, item, user, correlation), outcome
  - recommendation_duration_seconds: Request latency (histogram)
  - recommendation_cache_hits_total, recommendation_cache_misses_total

Snapshot Metrics:
  - snapshot_version: Active snapshot version (gauge)
  - snapshot_entities: Movies, users and ratings in the active snapshot (gauge)
  - snapshot_stage_duration_seconds: Load, pivot and similarity stages (histogram)
  - snapshot_reloads_total: Reload attempts by result (counter)

Availability Metrics:
  - availability_lookups_total: Streaming API calls by result (counter)
  - availability_lookup_duration_seconds: Streaming API latency (histogram)
  - availability_cache_hits_total, availability_cache_misses_total

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)

Event Bus Metrics:
  - events_published_total, events_handled_total

# Usage

	start := time.Now()
	resp, err := engine.Recommend(ctx, recommend.StrategyItem, q)
	metrics.RecordRecommendation("item", "ok", time.Since(start))

# Thread Safety

All metric operations are thread-safe. Prometheus collectors use atomic
operations internally.
*/
package metrics
