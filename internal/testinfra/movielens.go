// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package testinfra provides shared test fixtures: synthetic MovieLens
// datasets generated with faker and a mock streaming-availability server.
//
// The package deliberately avoids importing domain packages so that any
// package's tests can use it without an import cycle.
package testinfra

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaswdr/faker"
)

// FixtureGenres is the genre vocabulary used by generated fixtures.
var FixtureGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime",
	"Drama", "Horror", "Romance", "Sci-Fi", "Thriller",
}

// MovieRow mirrors a movies.csv row.
type MovieRow struct {
	ID     int
	Title  string
	Genres string
}

// RatingRow mirrors a ratings.csv row.
type RatingRow struct {
	UserID  int
	MovieID int
	Rating  float64
}

// LinkRow mirrors a links.csv row.
type LinkRow struct {
	MovieID int
	IMDbID  string
	TMDbID  int
}

// MovieLens is an in-memory MovieLens-shaped dataset.
type MovieLens struct {
	Movies  []MovieRow
	Ratings []RatingRow
	Links   []LinkRow
}

// FixtureOptions sizes a generated dataset.
type FixtureOptions struct {
	Seed   int64
	Movies int
	Users  int
	// Density is the probability that a user rated a given movie.
	Density float64
}

// NewMovieLens generates a deterministic synthetic dataset. Titles are built
// from faker words, a third of them carry a trailing ", The" article and
// every tenth has no year.
func NewMovieLens(opts FixtureOptions) *MovieLens {
	if opts.Movies <= 0 {
		opts.Movies = 20
	}
	if opts.Users <= 0 {
		opts.Users = 15
	}
	if opts.Density <= 0 {
		opts.Density = 0.4
	}

	src := rand.NewSource(opts.Seed)
	fake := faker.NewWithSeed(src)
	rng := rand.New(src) //nolint:gosec // deterministic fixtures

	ml := &MovieLens{}
	for id := 1; id <= opts.Movies; id++ {
		word := fake.Lorem().Word()
		base := strings.ToUpper(word[:1]) + word[1:] + " " + fake.Person().LastName()
		title := base
		if id%3 == 0 {
			title += ", The"
		}
		if id%10 != 0 {
			title += fmt.Sprintf(" (%d)", fake.IntBetween(1950, 2018))
		}

		n := fake.IntBetween(1, 3)
		picked := make([]string, 0, n)
		for _, i := range rng.Perm(len(FixtureGenres))[:n] {
			picked = append(picked, FixtureGenres[i])
		}

		ml.Movies = append(ml.Movies, MovieRow{ID: id, Title: title, Genres: strings.Join(picked, "|")})
		ml.Links = append(ml.Links, LinkRow{MovieID: id, IMDbID: fmt.Sprintf("%07d", 100000+id), TMDbID: 500 + id})
	}

	for user := 1; user <= opts.Users; user++ {
		for id := 1; id <= opts.Movies; id++ {
			if rng.Float64() >= opts.Density {
				continue
			}
			// Half-star steps between 0.5 and 5.0.
			ml.Ratings = append(ml.Ratings, RatingRow{UserID: user, MovieID: id, Rating: float64(fake.IntBetween(1, 10)) / 2})
		}
	}
	return ml
}

// WriteCSV writes movies.csv, ratings.csv and links.csv into dir.
func (ml *MovieLens) WriteCSV(t *testing.T, dir string) (movies, ratings, links string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("movieId,title,genres\n")
	for _, m := range ml.Movies {
		fmt.Fprintf(&b, "%d,%s,%s\n", m.ID, csvQuote(m.Title), csvQuote(m.Genres))
	}
	movies = writeFile(t, dir, "movies.csv", b.String())

	b.Reset()
	b.WriteString("userId,movieId,rating,timestamp\n")
	for i, r := range ml.Ratings {
		fmt.Fprintf(&b, "%d,%d,%.1f,%d\n", r.UserID, r.MovieID, r.Rating, 964982703+i)
	}
	ratings = writeFile(t, dir, "ratings.csv", b.String())

	b.Reset()
	b.WriteString("movieId,imdbId,tmdbId\n")
	for _, l := range ml.Links {
		fmt.Fprintf(&b, "%d,%s,%d\n", l.MovieID, l.IMDbID, l.TMDbID)
	}
	links = writeFile(t, dir, "links.csv", b.String())
	return movies, ratings, links
}

func csvQuote(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
