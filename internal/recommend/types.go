// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/recommend/filter"
)

// Strategy identifies a ranking strategy.
type Strategy string

const (
	// StrategyPopularity ranks by avg_rating * sqrt(num_ratings).
	StrategyPopularity Strategy = "popularity"
	// StrategyItem ranks by cosine similarity to a reference movie.
	StrategyItem Strategy = "item"
	// StrategyUser ranks unwatched movies by similarity-weighted ratings.
	StrategyUser Strategy = "user"
	// StrategyCorrelation ranks by Pearson correlation over shared raters.
	StrategyCorrelation Strategy = "correlation"
)

// String returns the strategy name.
func (s Strategy) String() string { return string(s) }

// Query is a validated recommendation request.
type Query struct {
	// N is the number of rows to return. Must be positive.
	N int `json:"n"`

	// Filter restricts candidates by genre and year before truncation.
	Filter filter.Criteria `json:"filter"`

	// Title is the exact reference title (item and correlation strategies).
	Title string `json:"title,omitempty"`

	// UserID is the reference user (user strategy).
	UserID int `json:"user_id,omitempty"`

	// MinShared overrides the minimum number of shared raters for the
	// correlation strategy. Zero uses the configured default.
	MinShared int `json:"min_shared,omitempty"`

	// RequestID is propagated into logs and response metadata.
	RequestID string `json:"request_id,omitempty"`
}

// cacheKey identifies a query within one snapshot version.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (q Query) cacheKey(s Strategy, version int64) string {
	genres := make([]string, len(q.Filter.Genres))
	for i, g := range q.Filter.Genres {
		genres[i] = strconv.Quote(g)
	}
	sort.Strings(genres)
	return fmt.Sprintf("rec:%d:%s:%d:[%s]:%d:%d:%s:%d:%d",
		version, s, q.N, strings.Join(genres, ","), q.Filter.MinYear, q.Filter.MaxYear,
		strconv.Quote(q.Title), q.UserID, q.MinShared)
}

// Recommendation is one ranked result row. Only the fields relevant to the
// producing strategy are set.
type Recommendation struct {
	MovieID int      `json:"movie_id"`
	Title   string   `json:"title"`
	Genres  []string `json:"genres"`
	Year    int      `json:"year"`

	// Score is the value the row was ranked by.
	Score float64 `json:"score"`

	AvgRating       float64 `json:"avg_rating,omitempty"`
	NumRatings      int     `json:"num_ratings,omitempty"`
	CombinedRating  float64 `json:"combined_rating,omitempty"`
	Similarity      float64 `json:"similarity,omitempty"`
	PredictedRating float64 `json:"predicted_rating,omitempty"`
	Correlation     float64 `json:"correlation,omitempty"`
	SharedRaters    int     `json:"shared_raters,omitempty"`
}

// Result is what a Recommender produces.
type Result struct {
	Items []Recommendation
	// TotalCandidates counts rows that passed the filter before truncation.
	TotalCandidates int
}

// Response is the engine output for one query.
type Response struct {
	Strategy        Strategy         `json:"strategy"`
	Items           []Recommendation `json:"items"`
	TotalCandidates int              `json:"total_candidates"`
	Metadata        ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID       string    `json:"request_id"`
	LatencyMS       int64     `json:"latency_ms"`
	CacheHit        bool      `json:"cache_hit"`
	SnapshotVersion int64     `json:"snapshot_version"`
	Timestamp       time.Time `json:"timestamp"`
}

// Recommender is one ranking strategy over a snapshot.
//
// Implementations must be pure: the same snapshot and query always yield the
// same result, and the snapshot is never modified.
type Recommender interface {
	Strategy() Strategy
	Recommend(ctx context.Context, snap *Snapshot, q Query) (Result, error)
}

// Stats summarizes the active snapshot.
type Stats struct {
	Version      int64     `json:"version"`
	Movies       int       `json:"movies"`
	RatedMovies  int       `json:"rated_movies"`
	Users        int       `json:"users"`
	Ratings      int       `json:"ratings"`
	LoadedAt     time.Time `json:"loaded_at"`
	RequestCount int64     `json:"request_count"`
	CacheHits    int64     `json:"cache_hits"`
	CacheMisses  int64     `json:"cache_misses"`
	ErrorCount   int64     `json:"error_count"`
}
