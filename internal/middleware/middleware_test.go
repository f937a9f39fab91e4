// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generates when missing", incoming: "", keep: false},
		{name: "preserves client id", incoming: "req-123", keep: true},
		{name: "replaces oversized id", incoming: strings.Repeat("x", maxRequestIDLength+1), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, correlationID string
			handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
				ctxID = logging.RequestIDFromContext(r.Context())
				correlationID = logging.CorrelationIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if tt.keep {
				if got != tt.incoming {
					t.Errorf("response id = %q, want %q", got, tt.incoming)
				}
			} else if _, err := uuid.Parse(got); err != nil {
				t.Errorf("response id %q is not a UUID: %v", got, err)
			}
			if ctxID != got {
				t.Errorf("context id = %q, header id = %q", ctxID, got)
			}
			if correlationID == "" {
				t.Error("no correlation id on context")
			}
		})
	}
}

func TestRequestID_AttachesRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := RequestID(func(_ http.ResponseWriter, r *http.Request) {
		l := logging.LoggerFromContext(r.Context()).Output(&buf)
		l.Warn().Msg("slow lookup")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=heat", nil)
	handler(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/api/v1/catalog/search"`, "slow lookup"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output: %s", want, out)
		}
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.With(func(next http.Handler) http.Handler {
		return PrometheusMetrics(next.ServeHTTP)
	}).Get("/test/movies/{movieID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/test/movies/{movieID}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/movies/"+id, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("counter delta = %v, want 3 under one pattern label", got)
	}
}

func TestRoutePattern_FallsBackToPath(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/raw/path", nil)
	if got := routePattern(req); got != "/raw/path" {
		t.Errorf("routePattern() = %q, want /raw/path", got)
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(100, 0)
	for i := 1; i <= 10; i++ {
		pm.RecordRequest(&RequestMetrics{Route: "/a", Method: http.MethodGet, DurationMS: int64(i), StatusCode: 200})
	}
	pm.RecordRequest(&RequestMetrics{Route: "/b", Method: http.MethodGet, DurationMS: 50, StatusCode: 500})

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(stats))
	}
	a := stats[0]
	if a.Endpoint != "GET /a" || a.RequestCount != 10 {
		t.Errorf("first = %+v, want GET /a with 10 requests", a)
	}
	if a.AvgDuration != 5.5 || a.P50Duration != 5 || a.MaxDuration != 10 {
		t.Errorf("GET /a stats = %+v", a)
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("GET /b errors = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_SlidingWindow(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3, 0)
	for i := 0; i < 5; i++ {
		pm.RecordRequest(&RequestMetrics{Route: fmt.Sprintf("/%d", i), Method: http.MethodGet})
	}

	stats := pm.Stats()
	if len(stats) != 3 {
		t.Fatalf("window holds %d routes, want 3", len(stats))
	}
	for _, s := range stats {
		if s.Endpoint == "GET /0" || s.Endpoint == "GET /1" {
			t.Errorf("evicted request still present: %s", s.Endpoint)
		}
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(10, time.Nanosecond)
	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/slow/{id}", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Millisecond)
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow/7", nil))

	stats := pm.Stats()
	if len(stats) != 1 || stats[0].Endpoint != "GET /slow/{id}" {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestPerformanceMonitor_Concurrent(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(50, 0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				pm.RecordRequest(&RequestMetrics{Route: "/c", Method: http.MethodGet, DurationMS: int64(j)})
				_ = pm.Stats()
			}
		}()
	}
	wg.Wait()

	if got := pm.Stats()[0].RequestCount; got != 50 {
		t.Errorf("RequestCount = %d, want full window of 50", got)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sorted []int64
		p      float64
		want   int64
	}{
		{nil, 0.5, 0},
		{[]int64{7}, 0.99, 7},
		{[]int64{1, 2, 3, 4, 5}, 0.5, 3},
		{[]int64{1, 2, 3, 4, 5}, 1.0, 5},
	}
	for _, tt := range tests {
		if got := percentile(tt.sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%v, %v) = %d, want %d", tt.sorted, tt.p, got, tt.want)
		}
	}
}
