// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/tomtom215/cinematch/internal/recommend"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"Amélie (2001)", "Amélie (2001)"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"a":1}`))
	if a != generateETag([]byte(`{"a":1}`)) {
		t.Error("ETag not stable for equal input")
	}
	if a == generateETag([]byte(`{"a":2}`)) {
		t.Error("ETag equal for different input")
	}
	// FNV-1a offset basis for empty input.
	if got := generateETag(nil); got != "811c9dc5" {
		t.Errorf("generateETag(nil) = %q, want 811c9dc5", got)
	}
}

func TestParseCommaSeparated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Drama", []string{"Drama"}},
		{" Action , Sci-Fi ,,", []string{"Action", "Sci-Fi"}},
		{",,", nil},
	}
	for _, tt := range tests {
		if got := parseCommaSeparated(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseCommaSeparated(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  intParam
	}{
		{"", intParam{Valid: true}},
		{"n=7", intParam{Value: 7, Set: true, Valid: true}},
		{"n=%207%20", intParam{Value: 7, Set: true, Valid: true}},
		{"n=-1", intParam{Value: -1, Set: true, Valid: true}},
		{"n=3.5", intParam{Set: true}},
		{"n=abc", intParam{Set: true}},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		if got := getIntParam(r, "n"); got != tt.want {
			t.Errorf("getIntParam(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{recommend.InvalidArgumentf("n must be positive"), http.StatusBadRequest, ErrCodeInvalidArgument},
		{fmt.Errorf("item recommendation: %w", recommend.NotFoundf("movie %q", "x")), http.StatusNotFound, ErrCodeNotFound},
		{recommend.ErrNotReady, http.StatusServiceUnavailable, ErrCodeNotReady},
		{recommend.ErrUnknownStrategy, http.StatusInternalServerError, ErrCodeRecommendation},
		{errors.New("boom"), http.StatusInternalServerError, ErrCodeRecommendation},
	}
	for _, tt := range tests {
		status, code := classifyError(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("classifyError(%v) = %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}
}

func TestParseRecommendRequest(t *testing.T) {
	t.Parallel()

	limits := recommend.DefaultConfig().Limits
	limits.MinYear, limits.MaxYear = 1895, 2021

	r := httptest.NewRequest(http.MethodGet, "/?genres=Drama,Crime&min_year=1990&country=DE", nil)
	req, apiErr := parseRecommendRequest(r, limits)
	if apiErr != nil {
		t.Fatalf("parseRecommendRequest: %+v", apiErr)
	}
	want := RecommendRequest{
		N:       limits.DefaultN,
		Genres:  []string{"Drama", "Crime"},
		MinYear: 1990,
		MaxYear: limits.MaxYear,
		Country: "de",
	}
	if !reflect.DeepEqual(req, want) {
		t.Errorf("request = %+v, want %+v", req, want)
	}

	q := req.query("rid")
	if q.N != want.N || q.Filter.MinYear != 1990 || q.RequestID != "rid" {
		t.Errorf("query = %+v", q)
	}

	r = httptest.NewRequest(http.MethodGet, "/?title=%20Heat%20(1995)%20&min_shared=abc", nil)
	if _, apiErr := parseSimilarRequest(r, limits); apiErr == nil || apiErr.Code != ErrCodeValidation {
		t.Errorf("non-integer min_shared: %+v", apiErr)
	}
	r = httptest.NewRequest(http.MethodGet, "/?title=%20Heat%20(1995)%20", nil)
	sim, apiErr := parseSimilarRequest(r, limits)
	if apiErr != nil || sim.Title != "Heat (1995)" || sim.MinShared != 0 {
		t.Errorf("similar = %+v, err %+v", sim, apiErr)
	}
}
