// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package algorithms implements the ranking strategies served by the
// recommendation engine.
//
// Every strategy ranks all candidates first, then applies the genre and
// year filter, then truncates to N, so the result is always the top N among
// eligible movies. Ties keep matrix (movie ID) order.
package algorithms

import (
	"context"
	"math"
	"sort"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// Popularity ranks movies by avg_rating * sqrt(num_ratings), which favours
// a high average backed by many ratings over a few perfect scores.
type Popularity struct{}

// NewPopularity creates the popularity strategy.
func NewPopularity() *Popularity {
	return &Popularity{}
}

// Strategy implements recommend.Recommender.
func (p *Popularity) Strategy() recommend.Strategy {
	return recommend.StrategyPopularity
}

// Recommend implements recommend.Recommender.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (p *Popularity) Recommend(ctx context.Context, snap *recommend.Snapshot, q recommend.Query) (recommend.Result, error) {
	if ContextCancelled(ctx) {
		return recommend.Result{}, ctx.Err()
	}

	stats := snap.MovieStats()
	rows := make([]recommend.Recommendation, 0, len(stats))
	for i := range stats {
		st := &stats[i]
		avg := st.Mean()
		combined := avg * math.Sqrt(float64(st.Count))

		r := recommend.NewRecommendation(st.Movie, combined)
		r.AvgRating = avg
		r.NumRatings = st.Count
		r.CombinedRating = combined
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	return recommend.Finalize(rows, q), nil
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Ensure all strategies implement the interface.
var (
	_ recommend.Recommender = (*Popularity)(nil)
	_ recommend.Recommender = (*ItemSimilarity)(nil)
	_ recommend.Recommender = (*UserSimilarity)(nil)
	_ recommend.Recommender = (*Correlation)(nil)
)
