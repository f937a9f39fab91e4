// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package dataset loads MovieLens-format movie, rating and link files.
//
// Two loaders read the same files: CSVLoader streams them through
// encoding/csv and DuckDBLoader lets an in-memory DuckDB parse them with
// read_csv_auto. Both return raw rows; normalization happens in the catalog.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Loader kinds accepted by New.
const (
	KindCSV    = "csv"
	KindDuckDB = "duckdb"
)

// ErrUnknownLoader is returned by New for an unsupported loader kind.
var ErrUnknownLoader = errors.New("unknown dataset loader")

// Paths locates the dataset files. Links is optional.
type Paths struct {
	Movies  string
	Ratings string
	Links   string
}

// Dataset holds the raw rows of one load.
type Dataset struct {
	Movies  []catalog.RawMovie
	Ratings []catalog.Rating
	Links   []catalog.Link
}

// Loader reads a complete dataset.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// New returns the loader for kind.
func New(kind string, paths Paths) (Loader, error) {
	if paths.Movies == "" || paths.Ratings == "" {
		return nil, errors.New("movies and ratings paths are required")
	}
	switch kind {
	case KindCSV, "":
		return NewCSVLoader(paths), nil
	case KindDuckDB:
		return NewDuckDBLoader(paths), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLoader, kind)
	}
}

// Snapshot normalizes the dataset into a catalog and wraps it for the engine.
func (d *Dataset) Snapshot(workers int) *recommend.Snapshot {
	cat := catalog.New(d.Movies, d.Links)
	return recommend.NewSnapshot(cat, d.Ratings, workers)
}

// LastModified returns the newest modification time across the dataset
// files. A missing optional links file is ignored.
func (p Paths) LastModified() (time.Time, error) {
	var latest time.Time
	for _, f := range []struct {
		path     string
		optional bool
	}{
		{p.Movies, false},
		{p.Ratings, false},
		{p.Links, true},
	} {
		if f.path == "" {
			continue
		}
		info, err := os.Stat(f.path)
		if err != nil {
			if f.optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return time.Time{}, fmt.Errorf("stat %s: %w", f.path, err)
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest, nil
}
