// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// UserSimilarity predicts ratings for the movies a user has not rated from
// the ratings of similar users.
//
// The user's cosine similarities to every other user are scaled to sum to 1
// and used as weights: predicted = sum(rating * weight) over other users.
// A user who never rated the movie contributes a literal 0, so this is not a
// weighted mean over raters; movies rated by many similar users score higher.
// Unwatched movies come from the rated mask, not from zero values.
type UserSimilarity struct{}

// NewUserSimilarity creates the user-to-user strategy.
func NewUserSimilarity() *UserSimilarity {
	return &UserSimilarity{}
}

// Strategy implements recommend.Recommender.
func (s *UserSimilarity) Strategy() recommend.Strategy {
	return recommend.StrategyUser
}

// Recommend implements recommend.Recommender.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (s *UserSimilarity) Recommend(ctx context.Context, snap *recommend.Snapshot, q recommend.Query) (recommend.Result, error) {
	rm, sim, err := snap.UserSimilarity(ctx)
	if err != nil {
		return recommend.Result{}, err
	}

	target, ok := rm.UserIndex(q.UserID)
	if !ok {
		return recommend.Result{}, recommend.NotFoundf("user %d has no ratings", q.UserID)
	}

	weights := userWeights(sim.Row(target), target)
	watched := rm.RatedRow(target)
	cat := snap.Catalog()

	rows := make([]recommend.Recommendation, 0, rm.Cols())
	for ti := 0; ti < rm.Cols(); ti++ {
		if watched[ti] {
			continue
		}
		if ti%256 == 0 && ContextCancelled(ctx) {
			return recommend.Result{}, ctx.Err()
		}

		var predicted float64
		for u, w := range weights {
			if w == 0 {
				continue
			}
			predicted += rm.Row(u)[ti] * w
		}

		movie, _ := cat.Movie(rm.MovieID(ti))
		r := recommend.NewRecommendation(movie, predicted)
		r.PredictedRating = predicted
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	return recommend.Finalize(rows, q), nil
}

// userWeights scales the similarities of every other user to sum to 1. The
// target's own weight is 0. A non-positive sum leaves every weight 0.
func userWeights(simRow []float64, target int) []float64 {
	weights := make([]float64, len(simRow))
	var sum float64
	for u, v := range simRow {
		if u != target {
			sum += v
		}
	}
	if sum <= 0 {
		return weights
	}
	for u, v := range simRow {
		if u != target {
			weights[u] = v / sum
		}
	}
	return weights
}
