// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/filter"
)

// RecommendRequest holds the query parameters shared by every
// recommendation endpoint. Validation messages use the query tag names.
//
// N is not validated here: a non-positive n reaches the engine, which
// rejects it as an invalid argument.
type RecommendRequest struct {
	N       int      `query:"n"`
	Genres  []string `query:"genres" validate:"omitempty,dive,required"`
	MinYear int      `query:"min_year" validate:"gte=0,lte=9999"`
	MaxYear int      `query:"max_year" validate:"gte=0,lte=9999,gtefield=MinYear"`
	Country string   `query:"country" validate:"omitempty,country"`
}

// SimilarRequest adds the reference title for item-based and correlation queries.
type SimilarRequest struct {
	RecommendRequest
	Title     string `query:"title" validate:"required,max=512"`
	MinShared int    `query:"min_shared" validate:"omitempty,gte=2,lte=100000"`
}

// SearchRequest holds the catalog search parameters.
type SearchRequest struct {
	Query string `query:"q" validate:"required,max=256"`
	Limit int    `query:"limit" validate:"min=1,max=100"`
}

// parseRecommendRequest reads the common parameters. Absent n and year
// bounds take the given limits so a single bound can be given.
func parseRecommendRequest(r *http.Request, limits recommend.LimitsConfig) (RecommendRequest, *models.APIError) {
	q := r.URL.Query()
	req := RecommendRequest{
		N:       limits.DefaultN,
		Genres:  parseCommaSeparated(q.Get("genres")),
		MinYear: limits.MinYear,
		MaxYear: limits.MaxYear,
		Country: strings.ToLower(strings.TrimSpace(q.Get("country"))),
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"n", &req.N},
		{"min_year", &req.MinYear},
		{"max_year", &req.MaxYear},
	} {
		v := getIntParam(r, p.name)
		if !v.Valid {
			return req, notAnInteger(p.name)
		}
		if v.Set {
			*p.dst = v.Value
		}
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		return req, apiErr
	}
	return req, nil
}

// parseSimilarRequest reads the common parameters plus title and min_shared.
func parseSimilarRequest(r *http.Request, limits recommend.LimitsConfig) (SimilarRequest, *models.APIError) {
	base, apiErr := parseRecommendRequest(r, limits)
	req := SimilarRequest{
		RecommendRequest: base,
		Title:            strings.TrimSpace(r.URL.Query().Get("title")),
	}
	if apiErr != nil {
		return req, apiErr
	}

	minShared := getIntParam(r, "min_shared")
	if !minShared.Valid {
		return req, notAnInteger("min_shared")
	}
	req.MinShared = minShared.Value

	if apiErr := validateRequest(&req); apiErr != nil {
		return req, apiErr
	}
	return req, nil
}

// query converts the request into an engine query.
func (req *RecommendRequest) query(requestID string) recommend.Query {
	return recommend.Query{
		N: req.N,
		Filter: filter.Criteria{
			Genres:  req.Genres,
			MinYear: req.MinYear,
			MaxYear: req.MaxYear,
		},
		RequestID: requestID,
	}
}

func notAnInteger(name string) *models.APIError {
	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: name + " must be an integer",
		Details: map[string]interface{}{"field": name, "tag": "integer"},
	}
}
