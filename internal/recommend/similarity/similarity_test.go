// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package similarity

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend/matrix"
	"github.com/tomtom215/cinematch/internal/testinfra"
)

const eps = 1e-9

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"scaled", []float64{1, 2}, []float64{2, 4}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 1}, []float64{-1, -1}, -1},
		{"zero vector", []float64{0, 0}, []float64{3, 4}, 0},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Cosine(tt.a, tt.b)
			if math.IsNaN(got) || math.Abs(got-tt.want) > eps {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPearson(t *testing.T) {
	t.Parallel()

	if r, ok := Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}); !ok || math.Abs(r-1) > eps {
		t.Errorf("Pearson(linear) = %v, %v", r, ok)
	}
	if r, ok := Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}); !ok || math.Abs(r+1) > eps {
		t.Errorf("Pearson(inverse) = %v, %v", r, ok)
	}
	if _, ok := Pearson([]float64{4, 4, 4}, []float64{1, 2, 3}); ok {
		t.Error("zero variance must be rejected")
	}
	if _, ok := Pearson([]float64{1}, []float64{1}); ok {
		t.Error("a single pair must be rejected")
	}
}

func fixtureMatrix(t *testing.T, axis matrix.Axis) *matrix.RatingMatrix {
	t.Helper()

	ml := testinfra.NewMovieLens(testinfra.FixtureOptions{Seed: 11, Movies: 25, Users: 12, Density: 0.5})
	raw := make([]catalog.RawMovie, 0, len(ml.Movies))
	for _, m := range ml.Movies {
		raw = append(raw, catalog.RawMovie{ID: m.ID, Title: m.Title, Genres: m.Genres})
	}
	ratings := make([]catalog.Rating, 0, len(ml.Ratings))
	for _, r := range ml.Ratings {
		ratings = append(ratings, catalog.Rating{UserID: r.UserID, MovieID: r.MovieID, Value: r.Rating})
	}
	return matrix.Build(catalog.New(raw, nil), ratings, axis)
}

func TestCompute_SymmetricUnitDiagonal(t *testing.T) {
	t.Parallel()

	for _, axis := range []matrix.Axis{matrix.ByMovie, matrix.ByUser} {
		t.Run(axis.String(), func(t *testing.T) {
			t.Parallel()

			m := fixtureMatrix(t, axis)
			s, err := Compute(context.Background(), m, 4)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if s.Len() != m.Rows() {
				t.Fatalf("Len() = %d, want %d", s.Len(), m.Rows())
			}
			for i := 0; i < s.Len(); i++ {
				if s.At(i, i) != 1 {
					t.Errorf("sim(%d,%d) = %v, want 1", i, i, s.At(i, i))
				}
				for j := 0; j < s.Len(); j++ {
					v := s.At(i, j)
					if v != s.At(j, i) {
						t.Errorf("sim(%d,%d)=%v != sim(%d,%d)=%v", i, j, v, j, i, s.At(j, i))
					}
					if math.IsNaN(v) || v < -1 || v > 1 {
						t.Errorf("sim(%d,%d) = %v out of range", i, j, v)
					}
				}
			}
		})
	}
}

func TestCompute_DeterministicAcrossWorkerCounts(t *testing.T) {
	t.Parallel()

	m := fixtureMatrix(t, matrix.ByMovie)
	serial, err := Compute(context.Background(), m, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Rows(); j++ {
			want := Cosine(m.Row(i), m.Row(j))
			if i == j {
				want = 1
			}
			if got := serial.At(i, j); math.Abs(got-want) > eps {
				t.Fatalf("sim(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}

	for _, workers := range []int{2, 3, 7, m.Rows() + 5} {
		parallel, err := Compute(context.Background(), m, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		for i := range serial.data {
			if serial.data[i] != parallel.data[i] {
				t.Fatalf("workers=%d: cell %d differs: %v vs %v", workers, i, serial.data[i], parallel.data[i])
			}
		}
	}
}

func TestCompute_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compute(ctx, fixtureMatrix(t, matrix.ByUser), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Compute() error = %v, want context.Canceled", err)
	}
}

func TestCompute_Empty(t *testing.T) {
	t.Parallel()

	s, err := Compute(context.Background(), matrix.Build(catalog.New(nil, nil), nil, matrix.ByMovie), 0)
	if err != nil || s.Len() != 0 {
		t.Errorf("Compute(empty) = %v, %v", s.Len(), err)
	}
}
