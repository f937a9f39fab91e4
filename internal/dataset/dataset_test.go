// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/testinfra"
)

func writeFixture(t *testing.T) (Paths, *testinfra.MovieLens) {
	t.Helper()
	ml := testinfra.NewMovieLens(testinfra.FixtureOptions{Seed: 42, Movies: 25, Users: 10})
	movies, ratings, links := ml.WriteCSV(t, t.TempDir())
	return Paths{Movies: movies, Ratings: ratings, Links: links}, ml
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNew(t *testing.T) {
	t.Parallel()

	paths := Paths{Movies: "m.csv", Ratings: "r.csv"}
	tests := []struct {
		kind    string
		want    interface{}
		wantErr bool
	}{
		{kind: "", want: &CSVLoader{}},
		{kind: KindCSV, want: &CSVLoader{}},
		{kind: KindDuckDB, want: &DuckDBLoader{}},
		{kind: "parquet", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			t.Parallel()
			got, err := New(tt.kind, paths)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLoader) {
					t.Errorf("New(%q) error = %v, want ErrUnknownLoader", tt.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.kind, err)
			}
			if reflect.TypeOf(got) != reflect.TypeOf(tt.want) {
				t.Errorf("New(%q) = %T, want %T", tt.kind, got, tt.want)
			}
		})
	}

	if _, err := New(KindCSV, Paths{Movies: "m.csv"}); err == nil {
		t.Error("expected error without a ratings path")
	}
}

func TestCSVLoader_Fixture(t *testing.T) {
	t.Parallel()

	paths, ml := writeFixture(t)
	ds, err := NewCSVLoader(paths).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(ds.Movies) != len(ml.Movies) {
		t.Errorf("movies = %d, want %d", len(ds.Movies), len(ml.Movies))
	}
	if len(ds.Ratings) != len(ml.Ratings) {
		t.Errorf("ratings = %d, want %d", len(ds.Ratings), len(ml.Ratings))
	}
	if len(ds.Links) != len(ml.Links) {
		t.Errorf("links = %d, want %d", len(ds.Links), len(ml.Links))
	}
	for i, m := range ml.Movies {
		if ds.Movies[i].ID != m.ID || ds.Movies[i].Title != m.Title || ds.Movies[i].Genres != m.Genres {
			t.Errorf("Movies[%d] = %+v, want %+v", i, ds.Movies[i], m)
		}
	}
	if ds.Links[0].IMDbID != ml.Links[0].IMDbID {
		t.Errorf("Links[0].IMDbID = %q, want %q", ds.Links[0].IMDbID, ml.Links[0].IMDbID)
	}

	snap := ds.Snapshot(1)
	if snap.Catalog().Len() != len(ml.Movies) {
		t.Errorf("catalog size = %d, want %d", snap.Catalog().Len(), len(ml.Movies))
	}
}

func TestCSVLoader_ColumnsByHeader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := Paths{
		Movies:  writeFile(t, dir, "movies.csv", "\ufeffgenres,title,movieId\nAction|Sci-Fi,\"Matrix, The (1999)\",2571\n"),
		Ratings: writeFile(t, dir, "ratings.csv", "timestamp,rating,movieId,userId\n964982703,4.5,2571,1\n"),
	}

	ds, err := NewCSVLoader(paths).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ds.Movies[0]; got.ID != 2571 || got.Title != "Matrix, The (1999)" || got.Genres != "Action|Sci-Fi" {
		t.Errorf("Movies[0] = %+v", got)
	}
	if got := ds.Ratings[0]; got.UserID != 1 || got.MovieID != 2571 || got.Value != 4.5 {
		t.Errorf("Ratings[0] = %+v", got)
	}
	if ds.Links != nil {
		t.Errorf("Links = %v, want nil without a links path", ds.Links)
	}
}

func TestCSVLoader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		movies  string
		ratings string
		wantSub string
	}{
		{
			name:    "missing column",
			movies:  "movieId,title\n1,Heat (1995)\n",
			ratings: "userId,movieId,rating\n1,1,4\n",
			wantSub: `missing column "genres"`,
		},
		{
			name:    "bad rating",
			movies:  "movieId,title,genres\n1,Heat (1995),Action\n",
			ratings: "userId,movieId,rating\n1,1,4\n1,1,great\n",
			wantSub: "line 3",
		},
		{
			name:    "bad movie id",
			movies:  "movieId,title,genres\nx,Heat (1995),Action\n",
			ratings: "userId,movieId,rating\n1,1,4\n",
			wantSub: "load movies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			paths := Paths{
				Movies:  writeFile(t, dir, "movies.csv", tt.movies),
				Ratings: writeFile(t, dir, "ratings.csv", tt.ratings),
			}
			_, err := NewCSVLoader(paths).Load(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoaders_BadLinksAreNotFatal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		links func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.csv") }},
		{"bad movie id", func(t *testing.T) string {
			return writeFile(t, t.TempDir(), "links.csv", "movieId,imdbId,tmdbId\n1,0113277,949\nabc,0133093,603\n")
		}},
		{"missing column", func(t *testing.T) string {
			return writeFile(t, t.TempDir(), "links.csv", "movieId,tmdbId\n1,949\n")
		}},
	}

	loaders := []struct {
		name string
		new  func(Paths) Loader
		slow bool
	}{
		{"csv", func(p Paths) Loader { return NewCSVLoader(p) }, false},
		{"duckdb", func(p Paths) Loader { return NewDuckDBLoader(p) }, true},
	}

	for _, ld := range loaders {
		for _, tt := range tests {
			t.Run(ld.name+"/"+tt.name, func(t *testing.T) {
				if ld.slow && testing.Short() {
					t.Skip("skipping DuckDB test in short mode")
				}
				t.Parallel()

				paths, ml := writeFixture(t)
				paths.Links = tt.links(t)

				ds, err := ld.new(paths).Load(context.Background())
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}
				if len(ds.Movies) != len(ml.Movies) {
					t.Errorf("movies = %d, want %d", len(ds.Movies), len(ml.Movies))
				}
				if len(ds.Links) != 0 {
					t.Errorf("Links = %d, want none", len(ds.Links))
				}
			})
		}
	}
}

func TestDuckDBLoader_MatchesCSV(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping DuckDB test in short mode")
	}
	t.Parallel()

	paths, _ := writeFixture(t)
	ctx := context.Background()

	want, err := NewCSVLoader(paths).Load(ctx)
	if err != nil {
		t.Fatalf("CSV Load() error = %v", err)
	}
	got, err := NewDuckDBLoader(paths).Load(ctx)
	if err != nil {
		t.Fatalf("DuckDB Load() error = %v", err)
	}

	if !reflect.DeepEqual(got.Movies, want.Movies) {
		t.Errorf("movies differ between loaders")
	}
	if len(got.Ratings) != len(want.Ratings) {
		t.Errorf("ratings = %d, want %d", len(got.Ratings), len(want.Ratings))
	}
	if !reflect.DeepEqual(got.Links, want.Links) {
		t.Errorf("links differ between loaders: %d vs %d rows", len(got.Links), len(want.Links))
	}
}

func TestPaths_LastModified(t *testing.T) {
	t.Parallel()

	paths, _ := writeFixture(t)
	old := time.Now().Add(-time.Hour)
	for _, p := range []string{paths.Movies, paths.Ratings, paths.Links} {
		if err := os.Chtimes(p, old, old); err != nil {
			t.Fatalf("Chtimes() error = %v", err)
		}
	}
	newer := time.Now().Add(-time.Minute).Truncate(time.Second)
	if err := os.Chtimes(paths.Ratings, newer, newer); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	got, err := paths.LastModified()
	if err != nil {
		t.Fatalf("LastModified() error = %v", err)
	}
	if !got.Equal(newer) {
		t.Errorf("LastModified() = %v, want %v", got, newer)
	}

	paths.Links = filepath.Join(t.TempDir(), "absent.csv")
	if _, err := paths.LastModified(); err != nil {
		t.Errorf("missing links should be ignored, got %v", err)
	}
	paths.Movies = filepath.Join(t.TempDir(), "absent.csv")
	if _, err := paths.LastModified(); err == nil {
		t.Error("expected error for missing movies file")
	}
}
