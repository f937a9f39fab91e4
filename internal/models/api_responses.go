// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"strategy": "popularity", "items": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 4,
//	    "snapshot_version": 3
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "movie \"Heat (1995)\" has no ratings"
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// AvailabilityError is set when streaming availability was requested but
// every lookup failed; the rows are then returned without availability.
type Metadata struct {
	Timestamp         time.Time `json:"timestamp"`
	RequestID         string    `json:"request_id,omitempty"`
	QueryTimeMS       int64     `json:"query_time_ms,omitempty"`
	Cached            bool      `json:"cached,omitempty"`
	SnapshotVersion   int64     `json:"snapshot_version,omitempty"`
	AvailabilityError string    `json:"availability_error,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - INVALID_ARGUMENT: The query itself is malformed (N <= 0, inverted years)
//   - VALIDATION_ERROR: A request parameter failed validation
//   - NOT_FOUND: Unknown title, unrated movie or unknown user
//   - NOT_READY: No dataset snapshot is loaded yet
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - RECOMMENDATION_ERROR: Any other failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
