// Package riot adapts the Riot Games HTTP endpoints to the domain contracts:
// live-game sampling, league standings, historical matches, account lookup
// and the Data Dragon champion catalog.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/riftwatch/riftwatch/pkg/logger"
	"github.com/riftwatch/riftwatch/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout        = 5 * time.Second
	defaultPlatformHost   = "https://euw1.api.riotgames.com"
	defaultRegionalHost   = "https://europe.api.riotgames.com"
	defaultDDragonHost    = "https://ddragon.leagueoflegends.com"
	defaultDDragonVersion = "14.10.1"
)

// Client issues authenticated requests against the Riot API. Platform
// endpoints (spectator, league) and regional endpoints (account, match) live
// on different hosts.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	platformHost   string
	regionalHost   string
	ddragonHost    string
	ddragonVersion string

	champs champCache

	log logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-call timeout. One slow player must not stall the
// whole sequential sweep.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithPlatformHost overrides the platform routing host.
func WithPlatformHost(host string) Option {
	return func(c *Client) {
		if host != "" {
			c.platformHost = host
		}
	}
}

// WithRegionalHost overrides the regional routing host.
func WithRegionalHost(host string) Option {
	return func(c *Client) {
		if host != "" {
			c.regionalHost = host
		}
	}
}

// WithDDragonHost overrides the Data Dragon host.
func WithDDragonHost(host string) Option {
	return func(c *Client) {
		if host != "" {
			c.ddragonHost = host
		}
	}
}

// WithDDragonVersion pins the Data Dragon data version.
func WithDDragonVersion(v string) Option {
	return func(c *Client) {
		if v != "" {
			c.ddragonVersion = v
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient constructs a Client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: defaultTimeout},
		apiKey:         apiKey,
		platformHost:   defaultPlatformHost,
		regionalHost:   defaultRegionalHost,
		ddragonHost:    defaultDDragonHost,
		ddragonVersion: defaultDDragonVersion,
		log:            logger.Get().Named("riot"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// getJSON performs one authenticated GET and decodes the JSON response into
// out. Status 404 maps to ErrNotFound and 429 to ErrRateLimited so callers
// can branch with errors.Is.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, out any) error {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.RecordRiotRequest(endpoint, status, float64(time.Since(start).Milliseconds()))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Riot-Token", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", endpoint, ErrRateLimited)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s status %d: %w", endpoint, resp.StatusCode, ErrUnexpectedStatus)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s decode: %w", endpoint, err)
	}
	return nil
}
