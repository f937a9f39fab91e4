// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// CSVLoader reads MovieLens CSV files with a header row. Columns are found
// by header name, so extra columns such as the rating timestamp are ignored.
type CSVLoader struct {
	paths Paths
}

// NewCSVLoader creates a CSV loader.
func NewCSVLoader(paths Paths) *CSVLoader {
	return &CSVLoader{paths: paths}
}

// Load implements Loader.
func (l *CSVLoader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	ds := &Dataset{}

	err := readCSV(ctx, l.paths.Movies, []string{"movieId", "title", "genres"}, func(rec []string) error {
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return fmt.Errorf("movieId %q: %w", rec[0], err)
		}
		ds.Movies = append(ds.Movies, catalog.RawMovie{ID: id, Title: rec[1], Genres: rec[2]})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}

	err = readCSV(ctx, l.paths.Ratings, []string{"userId", "movieId", "rating"}, func(rec []string) error {
		user, err := strconv.Atoi(rec[0])
		if err != nil {
			return fmt.Errorf("userId %q: %w", rec[0], err)
		}
		movie, err := strconv.Atoi(rec[1])
		if err != nil {
			return fmt.Errorf("movieId %q: %w", rec[1], err)
		}
		value, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return fmt.Errorf("rating %q: %w", rec[2], err)
		}
		ds.Ratings = append(ds.Ratings, catalog.Rating{UserID: user, MovieID: movie, Value: value})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	if l.paths.Links != "" {
		err = readCSV(ctx, l.paths.Links, []string{"movieId", "imdbId", "tmdbId"}, func(rec []string) error {
			movie, err := strconv.Atoi(rec[0])
			if err != nil {
				return fmt.Errorf("movieId %q: %w", rec[0], err)
			}
			// tmdbId is blank for some MovieLens rows.
			tmdb, _ := strconv.Atoi(rec[2])
			ds.Links = append(ds.Links, catalog.Link{MovieID: movie, IMDbID: rec[1], TMDbID: tmdb})
			return nil
		})
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return nil, fmt.Errorf("load links: %w", ctx.Err())
		case errors.Is(err, os.ErrNotExist):
			ds.Links = nil
			logging.Warn().Str("path", l.paths.Links).Msg("Links file not found, availability enrichment disabled for this dataset")
		default:
			// Links only feed the best-effort availability lookups.
			ds.Links = nil
			logging.Warn().Err(err).Str("path", l.paths.Links).Msg("Failed to load links, availability enrichment disabled for this dataset")
		}
	}

	metrics.RecordSnapshotStage("load_csv", time.Since(start))
	return ds, nil
}

// readCSV calls fn with the requested columns of every data row.
func readCSV(ctx context.Context, path string, columns []string, fn func([]string) error) error {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", path, err)
	}
	index, err := columnIndex(header, columns)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	picked := make([]string, len(columns))
	for line := 2; ; line++ {
		if line%10000 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for i, col := range index {
			picked[i] = strings.TrimSpace(rec[col])
		}
		if err := fn(picked); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}

func columnIndex(header, columns []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		// Strip a UTF-8 BOM from the first header cell.
		pos[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	index := make([]int, len(columns))
	for i, c := range columns {
		p, ok := pos[c]
		if !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
		index[i] = p
	}
	return index, nil
}
