// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package filter implements the genre and release-year candidate filter.
package filter

import (
	"fmt"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Criteria selects movies tagged with every listed genre and released
// within [MinYear, MaxYear]. Movies with an unknown year (0) only pass when
// the range includes 0.
type Criteria struct {
	Genres  []string `json:"genres,omitempty"`
	MinYear int      `json:"min_year"`
	MaxYear int      `json:"max_year"`
}

// Validate rejects an inverted year range.
func (c Criteria) Validate() error {
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("min_year %d is after max_year %d", c.MinYear, c.MaxYear)
	}
	return nil
}

// Matches reports whether a movie passes the criteria.
func (c Criteria) Matches(m *catalog.Movie) bool {
	if m.Year < c.MinYear || m.Year > c.MaxYear {
		return false
	}
	return m.HasGenres(c.Genres)
}

// Apply keeps the items whose movie passes, preserving order.
// The movie accessor lets callers filter any row type.
func Apply[T any](items []T, c Criteria, movie func(T) *catalog.Movie) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if m := movie(it); m != nil && c.Matches(m) {
			out = append(out, it)
		}
	}
	return out
}
