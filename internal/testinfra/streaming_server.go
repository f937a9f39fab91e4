// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package testinfra

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
)

// StreamingCapture is one request received by the mock server.
type StreamingCapture struct {
	Path    string
	IMDbID  string
	Country string
	Headers http.Header
}

// MockStreamingServer imitates the streaming-availability "get/basic" endpoint.
//
// Offers maps an IMDb id to service -> country -> link. Status forces an HTTP
// status for an IMDb id; ids with neither entry get a 404.
type MockStreamingServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	offers   map[string]map[string]map[string]string
	status   map[string]int
	captures []StreamingCapture
}

// NewMockStreamingServer starts a server that is closed with the test.
func NewMockStreamingServer(t *testing.T) *MockStreamingServer {
	t.Helper()

	m := &MockStreamingServer{
		offers: make(map[string]map[string]map[string]string),
		status: make(map[string]int),
	}

	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		imdbID, country := q.Get("imdb_id"), q.Get("country")

		m.mu.Lock()
		m.captures = append(m.captures, StreamingCapture{
			Path:    r.URL.Path,
			IMDbID:  imdbID,
			Country: country,
			Headers: r.Header.Clone(),
		})
		status, forced := m.status[imdbID]
		offers, known := m.offers[imdbID]
		m.mu.Unlock()

		if forced {
			w.WriteHeader(status)
			return
		}
		if !known {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		info := make(map[string]map[string]map[string]string, len(offers))
		for service, byCountry := range offers {
			if link, ok := byCountry[country]; ok {
				info[service] = map[string]map[string]string{country: {"link": link}}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck // test server
			"imdbID":        imdbID,
			"streamingInfo": info,
		})
	}))
	t.Cleanup(m.Server.Close)

	return m
}

// URL returns the server base URL.
func (m *MockStreamingServer) URL() string {
	return m.Server.URL
}

// SetOffer registers a link for an IMDb id, service and country.
func (m *MockStreamingServer) SetOffer(imdbID, service, country, link string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offers[imdbID] == nil {
		m.offers[imdbID] = make(map[string]map[string]string)
	}
	if m.offers[imdbID][service] == nil {
		m.offers[imdbID][service] = make(map[string]string)
	}
	m.offers[imdbID][service][country] = link
}

// SetStatus forces an HTTP status for an IMDb id.
func (m *MockStreamingServer) SetStatus(imdbID string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status[imdbID] = status
}

// Captures returns a copy of every request received so far.
func (m *MockStreamingServer) Captures() []StreamingCapture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]StreamingCapture, len(m.captures))
	copy(out, m.captures)
	return out
}
