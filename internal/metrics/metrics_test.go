// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// TestRecordRecommendation tests strategy/outcome counters
func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		outcome  string
	}{
		{name: "popularity ok", strategy: "popularity", outcome: "ok"},
		{name: "item not found", strategy: "item", outcome: "not_found"},
		{name: "user empty", strategy: "user", outcome: "empty"},
		{name: "correlation cache hit", strategy: "correlation", outcome: "cache_hit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := RecommendationRequests.WithLabelValues(tt.strategy, tt.outcome)
			before := testutil.ToFloat64(counter)

			RecordRecommendation(tt.strategy, tt.outcome, 3*time.Millisecond)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("counter delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordRecommendationCache(t *testing.T) {
	hits := testutil.ToFloat64(RecommendationCacheHits)
	misses := testutil.ToFloat64(RecommendationCacheMisses)

	RecordRecommendationCache(true)
	RecordRecommendationCache(false)
	RecordRecommendationCache(false)

	if got := testutil.ToFloat64(RecommendationCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendationCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestSetSnapshotStats(t *testing.T) {
	SetSnapshotStats(7, 9742, 610, 100836)

	if got := testutil.ToFloat64(SnapshotVersion); got != 7 {
		t.Errorf("snapshot_version = %v, want 7", got)
	}
	want := map[string]float64{"movies": 9742, "users": 610, "ratings": 100836}
	for kind, v := range want {
		if got := testutil.ToFloat64(SnapshotSize.WithLabelValues(kind)); got != v {
			t.Errorf("snapshot_entities{kind=%q} = %v, want %v", kind, got, v)
		}
	}
}

func TestRecordSnapshotStage(t *testing.T) {
	RecordSnapshotStage("similarity_by_movie", 250*time.Millisecond)

	var m dto.Metric
	h, ok := SnapshotStageDuration.WithLabelValues("similarity_by_movie").(interface {
		Write(*dto.Metric) error
	})
	if !ok {
		t.Fatal("histogram does not implement Write")
	}
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.GetHistogram().GetSampleCount() == 0 {
		t.Error("expected at least one observation")
	}
}

func TestRecordSnapshotReload(t *testing.T) {
	success := testutil.ToFloat64(SnapshotReloads.WithLabelValues("success"))
	failure := testutil.ToFloat64(SnapshotReloads.WithLabelValues("failure"))

	RecordSnapshotReload(nil)
	RecordSnapshotReload(errors.New("ratings.csv: no such file"))

	if got := testutil.ToFloat64(SnapshotReloads.WithLabelValues("success")) - success; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(SnapshotReloads.WithLabelValues("failure")) - failure; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}

func TestRecordAvailability(t *testing.T) {
	found := testutil.ToFloat64(AvailabilityLookups.WithLabelValues("found"))
	hits := testutil.ToFloat64(AvailabilityCacheHits)

	RecordAvailabilityLookup("found", 120*time.Millisecond)
	RecordAvailabilityCache(true)
	RecordAvailabilityCache(false)

	if got := testutil.ToFloat64(AvailabilityLookups.WithLabelValues("found")) - found; got != 1 {
		t.Errorf("lookups delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(AvailabilityCacheHits) - hits; got != 1 {
		t.Errorf("cache hits delta = %v, want 1", got)
	}
}

func TestRecordEvents(t *testing.T) {
	const topic = "dataset.changed"
	published := testutil.ToFloat64(EventsPublished.WithLabelValues(topic))
	failed := testutil.ToFloat64(EventsHandled.WithLabelValues(topic, "failure"))

	RecordEventPublished(topic)
	RecordEventHandled(topic, errors.New("reload failed"))
	RecordEventHandled(topic, nil)

	if got := testutil.ToFloat64(EventsPublished.WithLabelValues(topic)) - published; got != 1 {
		t.Errorf("published delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(EventsHandled.WithLabelValues(topic, "failure")) - failed; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
	}{
		{name: "popular ok", method: "GET", endpoint: "/api/v1/recommendations/popular", statusCode: "200"},
		{name: "similar not found", method: "GET", endpoint: "/api/v1/recommendations/similar", statusCode: "404"},
		{name: "user bad request", method: "GET", endpoint: "/api/v1/recommendations/user/abc", statusCode: "400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode)
			before := testutil.ToFloat64(counter)

			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 15*time.Millisecond)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("counter delta = %v, want 1", got)
			}
		})
	}
}

// TestTrackActiveRequest tests concurrent inc/dec balance
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}
