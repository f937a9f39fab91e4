// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package matrix pivots ratings into dense title×user tables.
//
// Cells without a rating hold 0 in the value table. The rated mask is built
// from the ratings themselves before the fill, so "never rated" and "rated 0"
// stay distinguishable.
package matrix

import (
	"sort"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Axis selects which key runs along the rows of a RatingMatrix.
type Axis int

const (
	// ByMovie puts titles on rows and users on columns.
	ByMovie Axis = iota
	// ByUser puts users on rows and titles on columns.
	ByUser
)

func (a Axis) String() string {
	switch a {
	case ByMovie:
		return "by_movie"
	case ByUser:
		return "by_user"
	default:
		return "unknown"
	}
}

// RatingMatrix is an immutable dense rating table plus its rated mask.
type RatingMatrix struct {
	axis Axis

	titles   []string
	movieIDs []int // lowest movie ID behind each title
	users    []int

	titleIndex map[string]int
	userIndex  map[int]int

	values [][]float64
	rated  [][]bool
}

type cell struct {
	sum   float64
	count int
}

// Build inner-joins ratings to the catalog and pivots them along axis.
//
// Ratings for movies missing from the catalog are dropped. Movies without any
// rating do not get a row. Movies sharing a canonical title collapse into one
// key and duplicate (title, user) ratings are averaged.
func Build(c *catalog.Catalog, ratings []catalog.Rating, axis Axis) *RatingMatrix {
	cells := make(map[string]map[int]*cell)
	ratedIDs := make(map[int]struct{})
	userSet := make(map[int]struct{})

	for _, r := range ratings {
		movie, ok := c.Movie(r.MovieID)
		if !ok {
			continue
		}
		byUser := cells[movie.Title]
		if byUser == nil {
			byUser = make(map[int]*cell)
			cells[movie.Title] = byUser
		}
		cl := byUser[r.UserID]
		if cl == nil {
			cl = &cell{}
			byUser[r.UserID] = cl
		}
		cl.sum += r.Value
		cl.count++
		ratedIDs[r.MovieID] = struct{}{}
		userSet[r.UserID] = struct{}{}
	}

	m := &RatingMatrix{
		axis:       axis,
		titleIndex: make(map[string]int, len(cells)),
		userIndex:  make(map[int]int, len(userSet)),
	}

	// Catalog movies are in ID order, which fixes the title order.
	for _, movie := range c.Movies() {
		if _, ok := ratedIDs[movie.ID]; !ok {
			continue
		}
		if _, seen := m.titleIndex[movie.Title]; seen {
			continue
		}
		m.titleIndex[movie.Title] = len(m.titles)
		m.titles = append(m.titles, movie.Title)
		m.movieIDs = append(m.movieIDs, movie.ID)
	}

	m.users = make([]int, 0, len(userSet))
	for u := range userSet {
		m.users = append(m.users, u)
	}
	sort.Ints(m.users)
	for i, u := range m.users {
		m.userIndex[u] = i
	}

	rows, cols := len(m.titles), len(m.users)
	if axis == ByUser {
		rows, cols = cols, rows
	}
	m.values = make([][]float64, rows)
	m.rated = make([][]bool, rows)
	for i := range m.values {
		m.values[i] = make([]float64, cols)
		m.rated[i] = make([]bool, cols)
	}

	for title, byUser := range cells {
		ti := m.titleIndex[title]
		for user, cl := range byUser {
			i, j := m.cellIndex(ti, m.userIndex[user])
			m.values[i][j] = cl.sum / float64(cl.count)
			m.rated[i][j] = true
		}
	}
	return m
}

func (m *RatingMatrix) cellIndex(titleIdx, userIdx int) (int, int) {
	if m.axis == ByUser {
		return userIdx, titleIdx
	}
	return titleIdx, userIdx
}

// Axis returns the row axis.
func (m *RatingMatrix) Axis() Axis { return m.axis }

// Rows returns the number of rows.
func (m *RatingMatrix) Rows() int { return len(m.values) }

// Cols returns the number of columns.
func (m *RatingMatrix) Cols() int {
	if m.axis == ByUser {
		return len(m.titles)
	}
	return len(m.users)
}

// Row returns the zero-filled values of row i. The slice must not be modified.
func (m *RatingMatrix) Row(i int) []float64 { return m.values[i] }

// RatedRow returns the rated mask of row i. The slice must not be modified.
func (m *RatingMatrix) RatedRow(i int) []bool { return m.rated[i] }

// Titles returns the title keys in matrix order.
func (m *RatingMatrix) Titles() []string { return m.titles }

// Users returns the user keys in ascending order.
func (m *RatingMatrix) Users() []int { return m.users }

// MovieID returns the movie ID behind title index ti.
func (m *RatingMatrix) MovieID(ti int) int { return m.movieIDs[ti] }

// TitleIndex resolves an exact title to its index.
func (m *RatingMatrix) TitleIndex(title string) (int, bool) {
	i, ok := m.titleIndex[title]
	return i, ok
}

// UserIndex resolves a user ID to its index.
func (m *RatingMatrix) UserIndex(user int) (int, bool) {
	i, ok := m.userIndex[user]
	return i, ok
}

// At returns the zero-filled value and the rated flag for a title and user
// index, independent of the row axis.
func (m *RatingMatrix) At(titleIdx, userIdx int) (float64, bool) {
	i, j := m.cellIndex(titleIdx, userIdx)
	return m.values[i][j], m.rated[i][j]
}

// RatingCount returns the number of rated cells.
func (m *RatingMatrix) RatingCount() int {
	n := 0
	for _, row := range m.rated {
		for _, r := range row {
			if r {
				n++
			}
		}
	}
	return n
}
