// CineMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package availability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// ClientConfig configures the streaming-availability API client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	// Host is sent as X-RapidAPI-Host.
	Host    string
	Timeout time.Duration

	// RatePerSecond and Burst cap outgoing requests. Zero disables the limiter.
	RatePerSecond float64
	Burst         int

	// MaxRetries bounds retries on HTTP 429; negative disables them.
	// BaseDelay doubles per attempt unless the server sends Retry-After.
	MaxRetries int
	BaseDelay  time.Duration
}

// Client calls GET {base}/get/basic for one movie and country.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// basicResponse is the subset of the get/basic payload we read.
type basicResponse struct {
	IMDbID        string                                  `json:"imdbID"`
	StreamingInfo map[string]map[string]streamingLocation `json:"streamingInfo"`
}

type streamingLocation struct {
	Link string `json:"link"`
}

// NewClient creates a client. Zero values get defaults: 10s timeout,
// 3 retries and a 1s base delay.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return c
}

// Lookup implements Lookup.
func (c *Client) Lookup(ctx context.Context, externalID, country string) ([]Offer, error) {
	start := time.Now()
	offers, result, err := c.lookup(ctx, externalID, country)
	metrics.RecordAvailabilityLookup(result, time.Since(start))
	return offers, err
}

func (c *Client) lookup(ctx context.Context, externalID, country string) ([]Offer, string, error) {
	q := url.Values{}
	q.Set("country", country)
	q.Set("imdb_id", externalID)
	q.Set("output_language", "en")
	endpoint := c.cfg.BaseURL + "/get/basic?" + q.Encode()

	resp, err := c.doRequestWithRateLimit(ctx, endpoint)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			return nil, "rate_limited", err
		}
		return nil, "error", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return []Offer{}, "none", nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // drain for reuse
		return nil, "error", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body basicResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "error", fmt.Errorf("decode availability response: %w", err)
	}

	offers := make([]Offer, 0, len(body.StreamingInfo))
	for service, byCountry := range body.StreamingInfo {
		if loc, ok := byCountry[country]; ok && loc.Link != "" {
			offers = append(offers, Offer{Service: service, Link: loc.Link})
		}
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].Service < offers[j].Service })

	if len(offers) == 0 {
		return offers, "none", nil
	}
	return offers, "found", nil
}

// doRequestWithRateLimit executes the request, retrying on HTTP 429 with
// exponential backoff. A Retry-After header in seconds overrides the delay.
func (c *Client) doRequestWithRateLimit(ctx context.Context, endpoint string) (*http.Response, error) {
	delay := c.cfg.BaseDelay

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("wait for rate limiter: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
		req.Header.Set("X-RapidAPI-Host", c.cfg.Host)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		if attempt == c.cfg.MaxRetries {
			break
		}

		retryDelay := delay << attempt
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
				retryDelay = time.Duration(seconds) * time.Second
			}
		}

		logging.Warn().
			Dur("retry_delay", retryDelay).
			Int("attempt", attempt+1).
			Int("max_retries", c.cfg.MaxRetries).
			Msg("Availability API rate limited (HTTP 429), retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, ErrRateLimited
}
