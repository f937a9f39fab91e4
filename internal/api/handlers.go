// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinematch/internal/availability"
	"github.com/tomtom215/cinematch/internal/middleware"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Enricher decorates ranked rows with streaming offers.
// *availability.Enricher implements it.
type Enricher interface {
	Supports(country string) bool
	Enrich(ctx context.Context, ids availability.IDResolver, items []recommend.Recommendation, country string) ([]availability.Row, bool)
}

// HandlerOptions holds the optional handler dependencies.
type HandlerOptions struct {
	// Enricher is nil when availability lookups are disabled.
	Enricher Enricher

	// AvailabilityBudget bounds all lookups for one request. Zero means
	// only the request context applies.
	AvailabilityBudget time.Duration

	// AvailabilityState reports the upstream circuit breaker state for
	// the health endpoint.
	AvailabilityState func() string

	// PerfMon backs /health/performance. Nil disables the endpoint data.
	PerfMon *middleware.PerformanceMonitor

	Version string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_recommend.go: recommendation endpoints
//   - handlers_catalog.go: catalog endpoints
//   - handlers_health.go: health and performance endpoints
type Handler struct {
	engine             *recommend.Engine
	enricher           Enricher
	availabilityBudget time.Duration
	availabilityState  func() string
	perfMon            *middleware.PerformanceMonitor
	version            string
	startTime          time.Time
}

// NewHandler creates a new API handler around the recommendation engine.
//
//nolint:gocritic // hugeParam: options struct passed by value at startup
func NewHandler(engine *recommend.Engine, opts HandlerOptions) *Handler {
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		engine:             engine,
		enricher:           opts.Enricher,
		availabilityBudget: opts.AvailabilityBudget,
		availabilityState:  opts.AvailabilityState,
		perfMon:            opts.PerfMon,
		version:            version,
		startTime:          time.Now(),
	}
}
