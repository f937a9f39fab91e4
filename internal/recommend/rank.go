// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend/filter"
)

// NewRecommendation builds a result row for a catalog movie.
//
//nolint:gocritic // hugeParam: catalog.Movie copied into the row
func NewRecommendation(m catalog.Movie, score float64) Recommendation {
	genres := make([]string, len(m.Genres))
	copy(genres, m.Genres)
	return Recommendation{
		MovieID: m.ID,
		Title:   m.Title,
		Genres:  genres,
		Year:    m.Year,
		Score:   score,
	}
}

// Finalize filters ranked candidates and truncates them to q.N. Candidates
// must already be in final rank order; filtering never reorders them.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func Finalize(ranked []Recommendation, q Query) Result {
	eligible := filter.Apply(ranked, q.Filter, func(r Recommendation) *catalog.Movie {
		return &catalog.Movie{ID: r.MovieID, Title: r.Title, Genres: r.Genres, Year: r.Year}
	})

	items := eligible
	if len(items) > q.N {
		items = items[:q.N]
	}
	return Result{Items: items, TotalCandidates: len(eligible)}
}
