// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog holds the normalized movie catalog: canonical titles,
// release years, genre sets and the IMDb cross-reference used for
// availability lookups.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NoGenres is the MovieLens placeholder for a movie without genre tags.
const NoGenres = "(no genres listed)"

// RawMovie is a catalog row as it appears in movies.csv.
type RawMovie struct {
	ID     int
	Title  string
	Genres string
}

// Movie is a normalized catalog entry.
type Movie struct {
	// ID is the MovieLens movieId.
	ID int `json:"movie_id"`

	// Title is the canonical title, e.g. "The Matrix (1999)".
	Title string `json:"title"`

	// Genres is the set of genre tags in source order.
	Genres []string `json:"genres"`

	// Year is the release year, 0 when the title carries none.
	Year int `json:"year"`
}

// HasGenres reports whether every genre in want is tagged on the movie.
func (m *Movie) HasGenres(want []string) bool {
	for _, g := range want {
		found := false
		for _, have := range m.Genres {
			if have == g {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Rating is a single user rating.
type Rating struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Value   float64 `json:"rating"`
}

// Link cross-references a movie to external databases.
type Link struct {
	MovieID int    `json:"movie_id"`
	IMDbID  string `json:"imdb_id"`
	TMDbID  int    `json:"tmdb_id,omitempty"`
}

// ExternalID returns the "tt"-prefixed, 7-digit zero-padded IMDb identifier.
func (l Link) ExternalID() (string, bool) {
	raw := strings.TrimPrefix(strings.TrimSpace(l.IMDbID), "tt")
	if raw == "" {
		return "", false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return "", false
	}
	return fmt.Sprintf("tt%07d", n), true
}

var (
	// Greedy base so that only the article directly before the year moves.
	trailingThe = regexp.MustCompile(`^(.*), The(\s*\(.*\))?\s*$`)
	trailingA   = regexp.MustCompile(`^(.*), A(\s*\(.*\))?\s*$`)
	yearGroup   = regexp.MustCompile(`\((\d{4})\)\s*$`)
)

// NormalizeTitle moves a trailing ", The" or ", A" article to the front.
//
//	"Matrix, The (1999)" -> "The Matrix (1999)"
//	"Beautiful Mind, A"  -> "A Beautiful Mind"
//
// The rules run in sequence, The first.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	title = moveArticle(trailingThe, "The", title)
	return moveArticle(trailingA, "A", title)
}

func moveArticle(re *regexp.Regexp, article, title string) string {
	m := re.FindStringSubmatch(title)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return title
	}
	out := article + " " + strings.TrimSpace(m[1])
	if suffix := strings.TrimSpace(m[2]); suffix != "" {
		out += " " + suffix
	}
	return out
}

// ExtractYear returns the four-digit group in the trailing parentheses of
// title, or 0 when the title does not end in one.
func ExtractYear(title string) int {
	m := yearGroup.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}

// SplitGenres splits a pipe-delimited genre string, dropping empty tags and
// the "(no genres listed)" placeholder.
func SplitGenres(genres string) []string {
	parts := strings.Split(genres, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == NoGenres {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Normalize converts a raw catalog row into a canonical Movie.
func Normalize(raw RawMovie) Movie {
	title := NormalizeTitle(raw.Title)
	return Movie{
		ID:     raw.ID,
		Title:  title,
		Genres: SplitGenres(raw.Genres),
		Year:   ExtractYear(title),
	}
}
