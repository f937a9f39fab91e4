// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

const defaultSearchLimit = 10

// Genres handles GET /api/v1/catalog/genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	snap := h.engine.Snapshot()
	if snap == nil {
		respondEngineError(w, recommend.ErrNotReady)
		return
	}
	respondSuccess(w, r, models.GenresResponse{Genres: snap.Catalog().Genres()})
}

// Search handles GET /api/v1/catalog/search?q=&limit=.
//
// Match is the first title containing q, the value a client should pass as
// the title parameter of the similar endpoint.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	limit := getIntParam(r, "limit")
	if !limit.Valid {
		respondAPIError(w, http.StatusBadRequest, notAnInteger("limit"))
		return
	}
	req := SearchRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: defaultSearchLimit,
	}
	if limit.Set {
		req.Limit = limit.Value
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	snap := h.engine.Snapshot()
	if snap == nil {
		respondEngineError(w, recommend.ErrNotReady)
		return
	}

	cat := snap.Catalog()
	match, _ := cat.FindTitle(req.Query)
	found := cat.Search(req.Query, req.Limit)

	results := make([]models.MovieDetail, len(found))
	for i := range found {
		results[i] = movieDetail(snap, &found[i])
	}
	respondSuccess(w, r, models.SearchResponse{
		Query:   req.Query,
		Match:   match,
		Results: results,
	})
}

// Movie handles GET /api/v1/catalog/movies/{movieID}.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}

	raw := chi.URLParam(r, "movieID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		respondEngineError(w, recommend.InvalidArgumentf("movie id %q is not numeric", raw))
		return
	}

	snap := h.engine.Snapshot()
	if snap == nil {
		respondEngineError(w, recommend.ErrNotReady)
		return
	}
	m, ok := snap.Catalog().Movie(id)
	if !ok {
		respondEngineError(w, recommend.NotFoundf("movie %d", id))
		return
	}
	respondSuccess(w, r, movieDetail(snap, &m))
}

// movieDetail joins a catalog movie with its rating aggregate and IMDb id.
func movieDetail(snap *recommend.Snapshot, m *catalog.Movie) models.MovieDetail {
	d := models.MovieDetail{
		MovieID: m.ID,
		Title:   m.Title,
		Genres:  m.Genres,
		Year:    m.Year,
	}
	if ext, ok := snap.Catalog().ExternalID(m.ID); ok {
		d.ExternalID = ext
	}

	// MovieStats is sorted by movie ID.
	stats := snap.MovieStats()
	i := sort.Search(len(stats), func(i int) bool { return stats[i].Movie.ID >= m.ID })
	if i < len(stats) && stats[i].Movie.ID == m.ID {
		d.AvgRating = stats[i].Mean()
		d.NumRatings = stats[i].Count
	}
	return d
}
