// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend/matrix"
	"github.com/tomtom215/cinematch/internal/recommend/similarity"
)

// MovieStat aggregates the ratings of one catalog movie.
type MovieStat struct {
	Movie catalog.Movie
	Sum   float64
	Count int
}

// Mean returns the average rating.
func (s *MovieStat) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Snapshot is an immutable view of one loaded dataset. Derived matrices are
// built on first use and memoized for the lifetime of the snapshot.
type Snapshot struct {
	catalog  *catalog.Catalog
	ratings  []catalog.Rating
	workers  int
	version  int64
	loadedAt time.Time

	statsOnce sync.Once
	stats     []MovieStat

	yearsOnce sync.Once
	minYear   int
	maxYear   int

	items lazy[derived]
	users lazy[derived]
}

type derived struct {
	ratings *matrix.RatingMatrix
	sim     *similarity.Matrix
}

// NewSnapshot wraps a catalog and its ratings. workers bounds similarity
// computation; zero uses GOMAXPROCS.
func NewSnapshot(cat *catalog.Catalog, ratings []catalog.Rating, workers int) *Snapshot {
	return &Snapshot{
		catalog:  cat,
		ratings:  ratings,
		workers:  workers,
		loadedAt: time.Now(),
	}
}

// Catalog returns the normalized catalog.
func (s *Snapshot) Catalog() *catalog.Catalog { return s.catalog }

// Ratings returns the raw ratings. The slice must not be modified.
func (s *Snapshot) Ratings() []catalog.Rating { return s.ratings }

// Version is assigned by the engine when the snapshot is installed.
func (s *Snapshot) Version() int64 { return s.version }

// LoadedAt returns the snapshot creation time.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// MovieStats returns per-movie rating aggregates for every rated catalog
// movie, in ascending movie ID order. Ratings for unknown movies are ignored.
func (s *Snapshot) MovieStats() []MovieStat {
	s.statsOnce.Do(func() {
		byID := make(map[int]*MovieStat)
		for _, r := range s.ratings {
			st, ok := byID[r.MovieID]
			if !ok {
				m, known := s.catalog.Movie(r.MovieID)
				if !known {
					continue
				}
				st = &MovieStat{Movie: m}
				byID[r.MovieID] = st
			}
			st.Sum += r.Value
			st.Count++
		}
		s.stats = make([]MovieStat, 0, len(byID))
		for _, m := range s.catalog.Movies() {
			if st, ok := byID[m.ID]; ok {
				s.stats = append(s.stats, *st)
			}
		}
	})
	return s.stats
}

// YearRange returns the earliest and latest non-zero catalog year. A
// catalog without any dated movie yields [0, 0].
func (s *Snapshot) YearRange() (minYear, maxYear int) {
	s.yearsOnce.Do(func() {
		for _, m := range s.catalog.Movies() {
			if m.Year == 0 {
				continue
			}
			if s.minYear == 0 || m.Year < s.minYear {
				s.minYear = m.Year
			}
			if m.Year > s.maxYear {
				s.maxYear = m.Year
			}
		}
	})
	return s.minYear, s.maxYear
}

// ItemSimilarity returns the title×user matrix and its title×title cosine
// similarity.
func (s *Snapshot) ItemSimilarity(ctx context.Context) (*matrix.RatingMatrix, *similarity.Matrix, error) {
	d, err := s.items.get(ctx, func(ctx context.Context) (derived, error) {
		return s.build(ctx, matrix.ByMovie)
	})
	return d.ratings, d.sim, err
}

// UserSimilarity returns the user×title matrix and its user×user cosine
// similarity.
func (s *Snapshot) UserSimilarity(ctx context.Context) (*matrix.RatingMatrix, *similarity.Matrix, error) {
	d, err := s.users.get(ctx, func(ctx context.Context) (derived, error) {
		return s.build(ctx, matrix.ByUser)
	})
	return d.ratings, d.sim, err
}

// Warm builds every derived structure up front.
func (s *Snapshot) Warm(ctx context.Context) error {
	s.MovieStats()
	s.YearRange()
	if _, _, err := s.ItemSimilarity(ctx); err != nil {
		return err
	}
	_, _, err := s.UserSimilarity(ctx)
	return err
}

func (s *Snapshot) build(ctx context.Context, axis matrix.Axis) (derived, error) {
	start := time.Now()
	rm := matrix.Build(s.catalog, s.ratings, axis)
	metrics.RecordSnapshotStage("pivot_"+axis.String(), time.Since(start))

	start = time.Now()
	sim, err := similarity.Compute(ctx, rm, s.workers)
	if err != nil {
		return derived{}, fmt.Errorf("compute %s similarity: %w", axis, err)
	}
	metrics.RecordSnapshotStage("similarity_"+axis.String(), time.Since(start))

	return derived{ratings: rm, sim: sim}, nil
}

// lazy memoizes the first successful result of fn. Failures, including
// cancellation, are not memoized so a later caller can retry.
type lazy[T any] struct {
	mu   sync.Mutex
	done bool
	val  T
}

func (l *lazy[T]) get(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done {
		return l.val, nil
	}
	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	l.val, l.done = v, true
	return v, nil
}
