// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// GenresResponse lists every genre in the catalog, sorted.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// SearchResponse answers a title search. Match is the first exact title
// containing the query, or empty when nothing matched.
type SearchResponse struct {
	Query   string        `json:"query"`
	Match   string        `json:"match,omitempty"`
	Results []MovieDetail `json:"results"`
}

// MovieDetail describes one catalog movie.
type MovieDetail struct {
	MovieID    int      `json:"movie_id"`
	Title      string   `json:"title"`
	Genres     []string `json:"genres"`
	Year       int      `json:"year"`
	ExternalID string   `json:"external_id,omitempty"`
	AvgRating  float64  `json:"avg_rating,omitempty"`
	NumRatings int      `json:"num_ratings,omitempty"`
}
