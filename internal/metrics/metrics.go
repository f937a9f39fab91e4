// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"strategy", "outcome"}, // outcome: ok, empty, cache_hit, invalid_argument, not_found, not_ready, error
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"strategy"},
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Snapshot Metrics
	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_version",
			Help: "Version of the active dataset snapshot",
		},
	)

	SnapshotSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_entities",
			Help: "Number of entities in the active snapshot",
		},
		[]string{"kind"}, // movies, users, ratings
	)

	SnapshotStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snapshot_stage_duration_seconds",
			Help:    "Duration of snapshot build stages in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"stage"}, // load, pivot_by_movie, similarity_by_user, ...
	)

	SnapshotReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_reloads_total",
			Help: "Total number of dataset reload attempts",
		},
		[]string{"result"},
	)

	// Availability Metrics
	AvailabilityLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "availability_lookups_total",
			Help: "Total number of streaming availability lookups",
		},
		[]string{"result"}, // found, none, error, rate_limited
	)

	AvailabilityLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "availability_lookup_duration_seconds",
			Help:    "Duration of streaming availability API calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	AvailabilityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "availability_cache_hits_total",
			Help: "Total number of availability cache hits",
		},
	)

	AvailabilityCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "availability_cache_misses_total",
			Help: "Total number of availability cache misses",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the internal bus",
		},
		[]string{"topic"},
	)

	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_handled_total",
			Help: "Total number of events handled from the internal bus",
		},
		[]string{"topic", "result"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the API rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one recommendation request and its outcome.
func RecordRecommendation(strategy, outcome string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(strategy, outcome).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordRecommendationCache records a recommendation cache lookup.
func RecordRecommendationCache(hit bool) {
	if hit {
		RecommendationCacheHits.Inc()
	} else {
		RecommendationCacheMisses.Inc()
	}
}

// SetSnapshotStats publishes the shape of a newly installed snapshot.
func SetSnapshotStats(version int64, movies, users, ratings int) {
	SnapshotVersion.Set(float64(version))
	SnapshotSize.WithLabelValues("movies").Set(float64(movies))
	SnapshotSize.WithLabelValues("users").Set(float64(users))
	SnapshotSize.WithLabelValues("ratings").Set(float64(ratings))
}

// RecordSnapshotStage records the duration of one snapshot build stage.
func RecordSnapshotStage(stage string, duration time.Duration) {
	SnapshotStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordSnapshotReload records a dataset reload attempt.
func RecordSnapshotReload(err error) {
	if err != nil {
		SnapshotReloads.WithLabelValues("failure").Inc()
		return
	}
	SnapshotReloads.WithLabelValues("success").Inc()
}

// RecordAvailabilityLookup records one call to the streaming availability API.
func RecordAvailabilityLookup(result string, duration time.Duration) {
	AvailabilityLookups.WithLabelValues(result).Inc()
	AvailabilityLookupDuration.Observe(duration.Seconds())
}

// RecordAvailabilityCache records an availability cache lookup.
func RecordAvailabilityCache(hit bool) {
	if hit {
		AvailabilityCacheHits.Inc()
	} else {
		AvailabilityCacheMisses.Inc()
	}
}

// RecordEventPublished records an event published to the internal bus.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventHandled records the result of handling an internal bus event.
func RecordEventHandled(topic string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EventsHandled.WithLabelValues(topic, result).Inc()
}
