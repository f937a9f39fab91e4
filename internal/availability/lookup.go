// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package availability looks up where a movie can be streamed.
//
// Lookups are layered: Client calls the streaming-availability API,
// BreakerLookup stops calling it while it is failing, and CachedLookup keeps
// answers in BadgerDB. Enricher attaches the offers to recommendation rows on
// a best-effort basis; a failed lookup never fails the request.
package availability

import (
	"context"
	"errors"
)

var (
	// ErrRateLimited is returned when the API keeps answering 429.
	ErrRateLimited = errors.New("availability api rate limit exceeded")

	// ErrUnexpectedStatus is returned for non-2xx answers other than 404 and 429.
	ErrUnexpectedStatus = errors.New("availability api unexpected status")
)

// Offer is one streaming service carrying a movie in a country.
type Offer struct {
	Service string `json:"service"`
	Link    string `json:"link"`
}

// Lookup returns the offers for an external movie id ("tt0133093") in a
// country. No offers is an empty slice, not an error.
type Lookup interface {
	Lookup(ctx context.Context, externalID, country string) ([]Offer, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, externalID, country string) ([]Offer, error)

// Lookup implements Lookup.
func (f LookupFunc) Lookup(ctx context.Context, externalID, country string) ([]Offer, error) {
	return f(ctx, externalID, country)
}
