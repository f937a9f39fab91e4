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

// ItemSimilarity recommends the movies whose rating vectors are closest,
// by cosine similarity, to a reference title.
//
// The reference's similarities to every other movie are scaled to sum to 1.
// The scale is uniform and positive so it never changes the order; it only
// makes the exposed Similarity values relative weights.
type ItemSimilarity struct{}

// NewItemSimilarity creates the item-to-item strategy.
func NewItemSimilarity() *ItemSimilarity {
	return &ItemSimilarity{}
}

// Strategy implements recommend.Recommender.
func (s *ItemSimilarity) Strategy() recommend.Strategy {
	return recommend.StrategyItem
}

// Recommend implements recommend.Recommender. The title must match a
// canonical catalog title exactly.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (s *ItemSimilarity) Recommend(ctx context.Context, snap *recommend.Snapshot, q recommend.Query) (recommend.Result, error) {
	if q.Title == "" {
		return recommend.Result{}, recommend.InvalidArgumentf("title is required")
	}
	if _, ok := snap.Catalog().ByTitle(q.Title); !ok {
		return recommend.Result{}, recommend.NotFoundf("movie %q is not in the catalog", q.Title)
	}

	rm, sim, err := snap.ItemSimilarity(ctx)
	if err != nil {
		return recommend.Result{}, err
	}

	ref, ok := rm.TitleIndex(q.Title)
	if !ok || isZero(rm.Row(ref)) {
		return recommend.Result{}, recommend.NotFoundf("movie %q has no ratings", q.Title)
	}

	row := sim.Row(ref)
	var sum float64
	for j, v := range row {
		if j != ref {
			sum += v
		}
	}

	cat := snap.Catalog()
	rows := make([]recommend.Recommendation, 0, len(row)-1)
	for j, v := range row {
		if j == ref {
			continue
		}
		if sum > 0 {
			v /= sum
		}
		movie, _ := cat.Movie(rm.MovieID(j))
		r := recommend.NewRecommendation(movie, v)
		r.Similarity = v
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	return recommend.Finalize(rows, q), nil
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
