// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package similarity computes pairwise similarity over rating vectors.
package similarity

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/tomtom215/cinematch/internal/recommend/matrix"
)

// Matrix is a square, symmetric similarity table with a unit diagonal,
// keyed by the row axis of the rating matrix it was computed from.
type Matrix struct {
	n    int
	data []float64
}

// Len returns the number of keys.
func (s *Matrix) Len() int { return s.n }

// At returns sim(i, j).
func (s *Matrix) At(i, j int) float64 { return s.data[i*s.n+j] }

// Row returns the similarities of key i to every key. The slice must not be modified.
func (s *Matrix) Row(i int) []float64 { return s.data[i*s.n : (i+1)*s.n] }

// Compute builds the cosine similarity matrix over the rows of m.
//
// Rows are dealt to workers round-robin; each worker fills the upper
// triangle of its rows and mirrors it, so every cell has one writer and the
// result does not depend on scheduling. workers <= 0 uses GOMAXPROCS.
func Compute(ctx context.Context, m *matrix.RatingMatrix, workers int) (*Matrix, error) {
	n := m.Rows()
	s := &Matrix{n: n, data: make([]float64, n*n)}
	if n == 0 {
		return s, nil
	}

	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		norms[i] = norm(m.Row(i))
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()

			// Row i costs n-i-1 cells; striding keeps the workers even.
			for i := first; i < n; i += workers {
				if ContextCancelled(ctx) {
					return
				}
				s.data[i*n+i] = 1
				a := m.Row(i)
				for j := i + 1; j < n; j++ {
					v := cosineWithNorms(a, m.Row(j), norms[i], norms[j])
					s.data[i*n+j] = v
					s.data[j*n+i] = v
				}
			}
		}(w)
	}

	wg.Wait()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}
	return s, nil
}

// Cosine returns dot(a,b)/(|a||b|), or 0 if either vector is all zero.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return cosineWithNorms(a, b, norm(a), norm(b))
}

func cosineWithNorms(a, b []float64, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for k := range a {
		dot += a[k] * b[k]
	}
	v := dot / (na * nb)
	// Rounding can push identical directions just past 1.
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Pearson returns the sample correlation of two paired series and false
// when fewer than two pairs are given or either series has zero variance.
func Pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0, false
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	r := cov / math.Sqrt(varX*varY)
	return math.Max(-1, math.Min(1, r)), true
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
