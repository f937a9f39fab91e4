// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/middleware"
	"github.com/tomtom215/cinematch/internal/models"
)

// Health handles GET /api/v1/health with the snapshot and upstream state.
// It always answers 200; use /health/ready for gating traffic.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)

	health := models.HealthStatus{
		Status:  "unavailable",
		Version: h.version,
		Uptime:  uptime,
	}
	if h.engine.Ready() {
		st := h.engine.Stats()
		health.Status = "healthy"
		health.SnapshotLoaded = true
		health.SnapshotVersion = st.Version
		health.Movies = st.Movies
		health.Ratings = st.Ratings
		health.LoadedAt = st.LoadedAt
	}
	if h.availabilityState != nil {
		health.Availability = h.availabilityState()
	}

	respondSuccess(w, r, health)
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of the snapshot.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only once a snapshot is loaded, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	ready := h.engine.Ready()
	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	data := map[string]interface{}{
		"ready_to_serve": ready,
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if ready {
		data["snapshot_version"] = h.engine.Stats().Version
	}

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthPerformance handles GET /api/v1/health/performance with latency
// percentiles per route over the recent request window.
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	stats := []middleware.EndpointStats{}
	if h.perfMon != nil {
		if s := h.perfMon.Stats(); s != nil {
			stats = s
		}
	}
	respondSuccess(w, r, map[string]interface{}{
		"endpoints": stats,
		"engine":    h.engine.Stats(),
	})
}
