// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/similarity"
)

// Correlation ranks movies by the Pearson correlation of their ratings with
// a reference title, computed over the users who rated both. Movies with
// fewer than q.MinShared shared raters, or with no rating variance among
// them, are not eligible.
type Correlation struct{}

// NewCorrelation creates the Pearson strategy.
func NewCorrelation() *Correlation {
	return &Correlation{}
}

// Strategy implements recommend.Recommender.
func (c *Correlation) Strategy() recommend.Strategy {
	return recommend.StrategyCorrelation
}

// Recommend implements recommend.Recommender.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (c *Correlation) Recommend(ctx context.Context, snap *recommend.Snapshot, q recommend.Query) (recommend.Result, error) {
	if q.Title == "" {
		return recommend.Result{}, recommend.InvalidArgumentf("title is required")
	}
	if _, ok := snap.Catalog().ByTitle(q.Title); !ok {
		return recommend.Result{}, recommend.NotFoundf("movie %q is not in the catalog", q.Title)
	}

	// The by-movie matrix is shared with the item strategy.
	rm, _, err := snap.ItemSimilarity(ctx)
	if err != nil {
		return recommend.Result{}, err
	}
	ref, ok := rm.TitleIndex(q.Title)
	if !ok {
		return recommend.Result{}, recommend.NotFoundf("movie %q has no ratings", q.Title)
	}

	minShared := q.MinShared
	if minShared < 2 {
		minShared = 2
	}

	refValues, refRated := rm.Row(ref), rm.RatedRow(ref)
	cat := snap.Catalog()
	var rows []recommend.Recommendation
	x := make([]float64, 0, len(refValues))
	y := make([]float64, 0, len(refValues))

	for ti := 0; ti < rm.Rows(); ti++ {
		if ti == ref {
			continue
		}
		if ti%256 == 0 && ContextCancelled(ctx) {
			return recommend.Result{}, ctx.Err()
		}

		x, y = x[:0], y[:0]
		values, rated := rm.Row(ti), rm.RatedRow(ti)
		for u := range refValues {
			if refRated[u] && rated[u] {
				x = append(x, refValues[u])
				y = append(y, values[u])
			}
		}
		if len(x) < minShared {
			continue
		}
		corr, ok := similarity.Pearson(x, y)
		if !ok {
			continue
		}

		movie, _ := cat.Movie(rm.MovieID(ti))
		r := recommend.NewRecommendation(movie, corr)
		r.Correlation = corr
		r.SharedRaters = len(x)
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	return recommend.Finalize(rows, q), nil
}
