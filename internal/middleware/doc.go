// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP middleware for the CineMatch API.

Key Components:

  - RequestID: X-Request-ID propagation plus request and correlation IDs on
    the logging context
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled
    by chi route pattern so path parameters do not explode cardinality
  - PerformanceMonitor: sliding window of recent request latencies with
    per-route percentiles and slow request warnings

The API router installs them in this order:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(perfMon.Middleware)
	...
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
