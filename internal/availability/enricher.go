// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package availability

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// IDResolver maps a movie ID to its external ("tt"-prefixed) id.
// *catalog.Catalog implements it.
type IDResolver interface {
	ExternalID(movieID int) (string, bool)
}

// Row is a recommendation with its streaming offers attached.
type Row struct {
	recommend.Recommendation
	Availability []Offer `json:"availability,omitempty"`
}

// Enricher attaches streaming offers to recommendation rows.
type Enricher struct {
	lookup         Lookup
	countries      map[string]struct{}
	maxConcurrency int
	logger         zerolog.Logger
}

// NewEnricher creates an enricher for the supported countries.
// maxConcurrency <= 0 means 4.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEnricher(lookup Lookup, countries []string, maxConcurrency int, logger zerolog.Logger) *Enricher {
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[c] = struct{}{}
	}
	return &Enricher{
		lookup:         lookup,
		countries:      set,
		maxConcurrency: maxConcurrency,
		logger:         logger.With().Str("component", "availability").Logger(),
	}
}

// Supports reports whether country is configured.
func (e *Enricher) Supports(country string) bool {
	_, ok := e.countries[country]
	return ok
}

// Enrich looks up every row with an external id concurrently. Each lookup
// fails on its own: a failed row simply has no offers. ok is false only when
// at least one lookup was attempted and all of them failed; the rows are
// then returned without availability. Row order is preserved.
func (e *Enricher) Enrich(ctx context.Context, ids IDResolver, items []recommend.Recommendation, country string) (rows []Row, ok bool) {
	rows = make([]Row, len(items))
	for i := range items {
		rows[i].Recommendation = items[i]
	}

	var attempted, failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrency)

	for i := range rows {
		externalID, has := ids.ExternalID(rows[i].MovieID)
		if !has {
			continue
		}
		attempted.Add(1)

		g.Go(func() error {
			offers, err := e.lookup.Lookup(gctx, externalID, country)
			if err != nil {
				failed.Add(1)
				e.logger.Debug().Err(err).
					Str("external_id", externalID).
					Str("country", country).
					Msg("availability lookup failed")
				return nil
			}
			rows[i].Availability = offers
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // lookups never return an error to the group

	if n := attempted.Load(); n > 0 && failed.Load() == n {
		e.logger.Warn().
			Int32("attempted", n).
			Str("country", country).
			Msg("all availability lookups failed")
		for i := range rows {
			rows[i].Availability = nil
		}
		return rows, false
	}
	return rows, true
}
