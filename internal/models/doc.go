// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the HTTP API data structures for CineMatch.

Every endpoint answers with the APIResponse envelope:

	{"status": "success", "data": ..., "metadata": {...}}
	{"status": "error", "error": {"code": "...", "message": "..."}, "metadata": {...}}

Recommendation payloads are the engine's own types (recommend.Response and
availability.Row); this package holds the envelope, health and catalog
shapes only.
*/
package models
