// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// RecommendationsData is the data payload of every recommendation endpoint.
// Items holds []recommend.Recommendation, or []availability.Row when a
// country was requested and enrichment succeeded.
type RecommendationsData struct {
	Strategy        recommend.Strategy `json:"strategy"`
	Reference       string             `json:"reference,omitempty"`
	Country         string             `json:"country,omitempty"`
	Items           interface{}        `json:"items"`
	TotalCandidates int                `json:"total_candidates"`
}

// availabilityDisabled is reported when a country is requested but no
// enricher is configured.
const availabilityDisabled = "availability lookups are disabled"

// Popular handles GET /api/v1/recommendations/popular.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	req, apiErr := parseRecommendRequest(r, h.requestLimits())
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if !h.checkCountry(w, req.Country) {
		return
	}

	q := req.query(logging.RequestIDFromContext(r.Context()))
	h.serveRecommendations(w, r, recommend.StrategyPopularity, q, req.Country, "")
}

// Similar handles GET /api/v1/recommendations/similar?title=.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	req, apiErr := parseSimilarRequest(r, h.requestLimits())
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if !h.checkCountry(w, req.Country) {
		return
	}

	q := req.query(logging.RequestIDFromContext(r.Context()))
	q.Title = req.Title
	h.serveRecommendations(w, r, recommend.StrategyItem, q, req.Country, req.Title)
}

// ForUser handles GET /api/v1/recommendations/user/{userID}.
func (h *Handler) ForUser(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	userID, err := recommend.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		respondEngineError(w, err)
		return
	}

	req, apiErr := parseRecommendRequest(r, h.requestLimits())
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if !h.checkCountry(w, req.Country) {
		return
	}

	q := req.query(logging.RequestIDFromContext(r.Context()))
	q.UserID = userID
	h.serveRecommendations(w, r, recommend.StrategyUser, q, req.Country, fmt.Sprintf("user %d", userID))
}

// Correlated handles GET /api/v1/recommendations/correlated?title=&min_shared=.
func (h *Handler) Correlated(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	req, apiErr := parseSimilarRequest(r, h.requestLimits())
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if !h.checkCountry(w, req.Country) {
		return
	}

	q := req.query(logging.RequestIDFromContext(r.Context()))
	q.Title = req.Title
	q.MinShared = req.MinShared
	h.serveRecommendations(w, r, recommend.StrategyCorrelation, q, req.Country, req.Title)
}

// requestLimits returns the engine limits with the year bounds resolved
// against the active snapshot, so a single given bound pairs with the
// known range.
func (h *Handler) requestLimits() recommend.LimitsConfig {
	limits := h.engine.Config().Limits
	limits.MinYear, limits.MaxYear = h.engine.YearRange()
	return limits
}

// checkCountry rejects a country the enricher was not configured for.
// Without an enricher every well-formed country passes and is reported
// as unavailable in the response metadata.
func (h *Handler) checkCountry(w http.ResponseWriter, country string) bool {
	if country == "" || h.enricher == nil || h.enricher.Supports(country) {
		return true
	}
	respondAPIError(w, http.StatusBadRequest, &models.APIError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("country %q is not supported", country),
		Details: map[string]interface{}{"field": "country", "tag": "supported"},
	})
	return false
}

//nolint:gocritic // hugeParam: q passed by value for immutability
func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, s recommend.Strategy, q recommend.Query, country, reference string) {
	resp, err := h.engine.Recommend(r.Context(), s, q)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	data := RecommendationsData{
		Strategy:        resp.Strategy,
		Reference:       reference,
		Items:           resp.Items,
		TotalCandidates: resp.TotalCandidates,
	}
	meta := models.Metadata{
		Timestamp:       resp.Metadata.Timestamp,
		RequestID:       resp.Metadata.RequestID,
		QueryTimeMS:     resp.Metadata.LatencyMS,
		Cached:          resp.Metadata.CacheHit,
		SnapshotVersion: resp.Metadata.SnapshotVersion,
	}

	if country != "" {
		data.Country = country
		if items, availErr := h.enrich(r.Context(), resp, country); availErr != "" {
			meta.AvailabilityError = availErr
		} else {
			data.Items = items
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// enrich decorates the engine rows with offers. The engine response is
// only read; rows are copies. A non-empty string reports why availability
// is missing from every row.
func (h *Handler) enrich(ctx context.Context, resp *recommend.Response, country string) (interface{}, string) {
	if h.enricher == nil {
		return nil, availabilityDisabled
	}
	if len(resp.Items) == 0 {
		return resp.Items, ""
	}
	snap := h.engine.Snapshot()
	if snap == nil {
		return nil, "catalog unavailable"
	}

	if h.availabilityBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.availabilityBudget)
		defer cancel()
	}

	rows, ok := h.enricher.Enrich(ctx, snap.Catalog(), resp.Items, country)
	if !ok {
		logging.Ctx(ctx).Warn().
			Str("country", country).
			Int("rows", len(rows)).
			Msg("availability lookups failed for every row")
		return nil, "streaming availability lookup failed"
	}
	return rows, ""
}
