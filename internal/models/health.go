// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import "time"

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status          string    `json:"status"` // "healthy" or "unavailable"
	Version         string    `json:"version"`
	Uptime          float64   `json:"uptime_seconds"`
	SnapshotLoaded  bool      `json:"snapshot_loaded"`
	SnapshotVersion int64     `json:"snapshot_version,omitempty"`
	Movies          int       `json:"movies,omitempty"`
	Ratings         int       `json:"ratings,omitempty"`
	LoadedAt        time.Time `json:"loaded_at,omitempty"`
	Availability    string    `json:"availability,omitempty"` // circuit breaker state when enabled
}
