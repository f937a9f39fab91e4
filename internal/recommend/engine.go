// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Engine validates queries, dispatches them to the registered recommenders
// over the current snapshot and caches the responses. It is safe for
// concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	recommenders map[Strategy]Recommender
	recMu        sync.RWMutex

	snapshot atomic.Pointer[Snapshot]
	version  atomic.Int64

	cache *cache.LRU[*Response]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:       cfg,
		logger:       logger.With().Str("component", "recommend").Logger(),
		recommenders: make(map[Strategy]Recommender),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Register installs a recommender for its strategy, replacing any previous one.
func (e *Engine) Register(r Recommender) {
	e.recMu.Lock()
	defer e.recMu.Unlock()

	e.recommenders[r.Strategy()] = r
	e.logger.Info().
		Str("strategy", r.Strategy().String()).
		Msg("registered recommender")
}

// Strategies returns the registered strategies.
func (e *Engine) Strategies() []Strategy {
	e.recMu.RLock()
	defer e.recMu.RUnlock()

	out := make([]Strategy, 0, len(e.recommenders))
	for s := range e.recommenders {
		out = append(out, s)
	}
	return out
}

// Reload installs a new snapshot, assigns it the next version and drops
// every cached response. In-flight requests finish on the snapshot they
// started with.
func (e *Engine) Reload(snap *Snapshot) int64 {
	snap.version = e.version.Add(1)
	e.snapshot.Store(snap)
	if e.cache != nil {
		e.cache.Clear()
	}

	stats := snap.MovieStats()
	users := make(map[int]struct{})
	for _, r := range snap.Ratings() {
		users[r.UserID] = struct{}{}
	}
	metrics.SetSnapshotStats(snap.version, snap.Catalog().Len(), len(users), len(snap.Ratings()))

	e.logger.Info().
		Int64("version", snap.version).
		Int("movies", snap.Catalog().Len()).
		Int("rated_movies", len(stats)).
		Int("users", len(users)).
		Int("ratings", len(snap.Ratings())).
		Msg("snapshot installed")

	return snap.version
}

// Snapshot returns the active snapshot, or nil before the first Reload.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Ready reports whether a snapshot is installed.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Recommend runs strategy s for q.
//
// N must be positive and is clamped to limits.max_n. A zero year range
// defaults to YearRange. Errors wrap ErrInvalidArgument,
// ErrNotFound, ErrNotReady or ErrUnknownStrategy where one applies. An empty
// Items slice is a valid result.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, s Strategy, q Query) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	q, err := e.prepareQuery(q)
	if err != nil {
		return nil, e.fail(s, start, err)
	}
	logger := e.createRequestLogger(ctx, s, q)

	snap := e.snapshot.Load()
	if snap == nil {
		return nil, e.fail(s, start, ErrNotReady)
	}

	if q.Filter.MinYear == 0 && q.Filter.MaxYear == 0 {
		q.Filter.MinYear, q.Filter.MaxYear = e.yearRange(snap)
	}

	rec, ok := e.recommender(s)
	if !ok {
		return nil, e.fail(s, start, fmt.Errorf("%w: %q", ErrUnknownStrategy, s))
	}

	key := q.cacheKey(s, snap.version)
	if resp := e.tryGetCachedResponse(key, start, logger); resp != nil {
		resp.Metadata.RequestID = q.RequestID
		metrics.RecordRecommendation(s.String(), "cache_hit", time.Since(start))
		return resp, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
	defer cancel()

	result, err := rec.Recommend(runCtx, snap, q)
	if err != nil {
		logger.Debug().Err(err).Msg("recommendation failed")
		return nil, e.fail(s, start, fmt.Errorf("%s recommendation: %w", s, err))
	}

	resp := &Response{
		Strategy:        s,
		Items:           result.Items,
		TotalCandidates: result.TotalCandidates,
		Metadata: ResponseMetadata{
			RequestID:       q.RequestID,
			LatencyMS:       time.Since(start).Milliseconds(),
			SnapshotVersion: snap.version,
			Timestamp:       time.Now(),
		},
	}
	if resp.Items == nil {
		resp.Items = []Recommendation{}
	}
	e.cacheResponse(key, resp)

	metrics.RecordRecommendation(s.String(), outcome(resp), time.Since(start))
	logger.Debug().
		Int("candidates", resp.TotalCandidates).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return copyResponse(resp), nil
}

// prepareQuery applies defaults and rejects invalid arguments.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) prepareQuery(q Query) (Query, error) {
	if q.N <= 0 {
		return q, InvalidArgumentf("n must be positive, got %d", q.N)
	}
	if q.N > e.config.Limits.MaxN {
		q.N = e.config.Limits.MaxN
	}

	if err := q.Filter.Validate(); err != nil {
		return q, InvalidArgumentf("%v", err)
	}

	if q.MinShared < 0 {
		return q, InvalidArgumentf("min_shared must be positive, got %d", q.MinShared)
	}
	if q.MinShared == 0 {
		q.MinShared = e.config.Correlation.MinSharedRaters
	}

	if q.RequestID == "" {
		q.RequestID = logging.GenerateCorrelationID()
	}
	return q, nil
}

// YearRange returns the year range applied when a query gives none: the
// configured bounds where set, otherwise the known years of the active
// snapshot. Before the first Reload unset bounds are [0, 9999].
func (e *Engine) YearRange() (minYear, maxYear int) {
	snap := e.snapshot.Load()
	if snap == nil {
		minYear, maxYear = 0, 9999
		if e.config.Limits.MinYear != 0 {
			minYear = e.config.Limits.MinYear
		}
		if e.config.Limits.MaxYear != 0 {
			maxYear = e.config.Limits.MaxYear
		}
		return minYear, maxYear
	}
	return e.yearRange(snap)
}

func (e *Engine) yearRange(snap *Snapshot) (minYear, maxYear int) {
	minYear, maxYear = snap.YearRange()
	if e.config.Limits.MinYear != 0 {
		minYear = e.config.Limits.MinYear
	}
	if e.config.Limits.MaxYear != 0 {
		maxYear = e.config.Limits.MaxYear
	}
	return minYear, maxYear
}

//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) createRequestLogger(ctx context.Context, s Strategy, q Query) zerolog.Logger {
	return logging.CtxWith(ctx, e.logger).
		Str("rec_id", q.RequestID).
		Str("strategy", s.String()).
		Int("n", q.N).
		Logger()
}

func (e *Engine) recommender(s Strategy) (Recommender, bool) {
	e.recMu.RLock()
	defer e.recMu.RUnlock()
	r, ok := e.recommenders[s]
	return r, ok
}

func (e *Engine) tryGetCachedResponse(key string, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		metrics.RecordRecommendationCache(false)
		return nil
	}

	e.cacheHits.Add(1)
	metrics.RecordRecommendationCache(true)
	resp := copyResponse(cached)
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return resp
}

func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache != nil {
		e.cache.Add(key, resp)
	}
}

func (e *Engine) fail(s Strategy, start time.Time, err error) error {
	e.errorCount.Add(1)
	metrics.RecordRecommendation(s.String(), errorOutcome(err), time.Since(start))
	return err
}

// Stats returns counters and the shape of the active snapshot.
func (e *Engine) Stats() Stats {
	st := Stats{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
	snap := e.snapshot.Load()
	if snap == nil {
		return st
	}

	users := make(map[int]struct{})
	for _, r := range snap.Ratings() {
		users[r.UserID] = struct{}{}
	}
	st.Version = snap.version
	st.Movies = snap.Catalog().Len()
	st.RatedMovies = len(snap.MovieStats())
	st.Users = len(users)
	st.Ratings = len(snap.Ratings())
	st.LoadedAt = snap.LoadedAt()
	return st
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// copyResponse returns a response whose Items slice can be modified
// without touching the cached one.
func copyResponse(resp *Response) *Response {
	items := make([]Recommendation, len(resp.Items))
	copy(items, resp.Items)
	cp := *resp
	cp.Items = items
	return &cp
}

func outcome(resp *Response) string {
	if len(resp.Items) == 0 {
		return "empty"
	}
	return "ok"
}

func errorOutcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	default:
		return "error"
	}
}
