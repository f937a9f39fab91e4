// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeInvalidArgument  = "INVALID_ARGUMENT"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNotReady         = "NOT_READY"
	ErrCodeRecommendation   = "RECOMMENDATION_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// classifyError maps an engine error to an HTTP status and error code.
func classifyError(err error) (status int, code string) {
	switch {
	case recommend.IsInvalidArgument(err):
		return http.StatusBadRequest, ErrCodeInvalidArgument
	case recommend.IsNotFound(err):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, recommend.ErrNotReady):
		return http.StatusServiceUnavailable, ErrCodeNotReady
	default:
		return http.StatusInternalServerError, ErrCodeRecommendation
	}
}

// respondEngineError writes the mapped error. Caller faults are answered
// with the engine message; server faults are logged and answered generically.
func respondEngineError(w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, code, "Failed to compute recommendations", err)
		return
	}
	respondError(w, status, code, err.Error(), nil)
}
