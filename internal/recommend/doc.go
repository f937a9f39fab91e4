// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements the movie recommendation engine.
//
// # Architecture
//
// A Snapshot holds one loaded dataset: the normalized catalog and the raw
// ratings. Rating matrices and cosine similarity matrices are derived from it
// on first use and memoized until the snapshot is replaced.
//
// Strategies implement Recommender and live in the algorithms subpackage:
//
//   - Popularity: avg_rating * sqrt(num_ratings)
//   - Item-based: cosine similarity to a reference title
//   - User-based: similarity-weighted ratings of other users
//   - Correlation: Pearson correlation over shared raters
//
// # Query Semantics
//
// Every strategy ranks all candidates, then filters by genre and year, then
// truncates to N. Errors wrap ErrInvalidArgument or ErrNotFound; an empty
// result is not an error.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.Register(algorithms.NewPopularity())
//	engine.Register(algorithms.NewItemSimilarity())
//
//	engine.Reload(recommend.NewSnapshot(cat, ratings, 0))
//
//	resp, err := engine.Recommend(ctx, recommend.StrategyItem, recommend.Query{
//	    N:     5,
//	    Title: "The Matrix (1999)",
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Reload swaps the snapshot
// atomically; requests already running finish on the snapshot they started
// with.
package recommend
