// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"sort"
	"strings"
)

// Catalog is an immutable, indexed set of normalized movies.
// It is safe for concurrent use once built.
type Catalog struct {
	movies  []Movie // sorted by ID
	byID    map[int]int
	byTitle map[string]int
	links   map[int]Link
	genres  []string
}

// New normalizes raw rows and builds the catalog indexes. Rows with a
// duplicate ID are dropped after the first; for a duplicate canonical title
// the title index keeps the lowest ID.
func New(raw []RawMovie, links []Link) *Catalog {
	movies := make([]Movie, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))
	for _, r := range raw {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		movies = append(movies, Normalize(r))
	}
	return FromMovies(movies, links)
}

// FromMovies builds a catalog from already-normalized movies.
func FromMovies(movies []Movie, links []Link) *Catalog {
	sorted := make([]Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c := &Catalog{
		movies:  sorted,
		byID:    make(map[int]int, len(sorted)),
		byTitle: make(map[string]int, len(sorted)),
		links:   make(map[int]Link, len(links)),
	}

	genreSet := make(map[string]struct{})
	for i := range sorted {
		m := &sorted[i]
		c.byID[m.ID] = i
		if _, ok := c.byTitle[m.Title]; !ok {
			c.byTitle[m.Title] = i
		}
		for _, g := range m.Genres {
			genreSet[g] = struct{}{}
		}
	}

	c.genres = make([]string, 0, len(genreSet))
	for g := range genreSet {
		c.genres = append(c.genres, g)
	}
	sort.Strings(c.genres)

	for _, l := range links {
		if _, ok := c.byID[l.MovieID]; ok {
			c.links[l.MovieID] = l
		}
	}
	return c
}

// Len returns the number of movies.
func (c *Catalog) Len() int { return len(c.movies) }

// Movies returns the movies in ascending ID order. The slice must not be modified.
func (c *Catalog) Movies() []Movie { return c.movies }

// Movie looks up a movie by ID.
func (c *Catalog) Movie(id int) (Movie, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// ByTitle looks up a movie by exact, case-sensitive canonical title.
func (c *Catalog) ByTitle(title string) (Movie, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// Genres returns the sorted set of all genre tags.
func (c *Catalog) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}

// FindTitle returns the first title, in ID order, that contains q
// case-insensitively.
func (c *Catalog) FindTitle(q string) (string, bool) {
	found := c.Search(q, 1)
	if len(found) == 0 {
		return "", false
	}
	return found[0].Title, true
}

// Search returns up to limit movies whose title contains q case-insensitively.
// A non-positive limit returns every match.
func (c *Catalog) Search(q string, limit int) []Movie {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return nil
	}
	var out []Movie
	for i := range c.movies {
		if strings.Contains(strings.ToLower(c.movies[i].Title), needle) {
			out = append(out, c.movies[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// ExternalID returns the IMDb identifier for a movie, if a link exists.
func (c *Catalog) ExternalID(movieID int) (string, bool) {
	l, ok := c.links[movieID]
	if !ok {
		return "", false
	}
	return l.ExternalID()
}
