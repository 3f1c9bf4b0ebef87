package geostore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultTimeout = 10 * time.Second
	defaultBackoff = 100 * time.Millisecond
	maxBodyBytes   = 32 << 20
)

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL    string        // e.g. http://geostore:3000/v1
	Timeout    time.Duration // per attempt; default 10s
	MaxRetries int           // extra attempts after a temporary failure
	Backoff    time.Duration // first retry delay, doubled each attempt
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches geostores over HTTP.
type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries uint64
	backoff    time.Duration
	logger     *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// NewClient validates cfg and returns a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid geostore url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid geostore url %q: scheme must be http or https", cfg.BaseURL)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must not be negative, got %d", cfg.MaxRetries)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       httpClient,
		maxRetries: uint64(cfg.MaxRetries),
		backoff:    backoff,
		logger:     logger,
	}, nil
}

// Fetch retrieves the geostore with the given id. It returns ErrNotFound for
// a 404 or a geostore without geometry, and a *TransportError for anything
// else. Temporary failures are retried with exponential backoff.
func (c *Client) Fetch(ctx context.Context, id string) (*Geostore, error) {
	endpoint := c.baseURL + "/geostore/" + url.PathEscape(id)

	var gs *Geostore
	attempt := 0
	b := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		result, err := c.fetchOnce(ctx, endpoint)
		if err != nil {
			var te *TransportError
			if errors.As(err, &te) && te.Temporary() {
				c.logger.Debug("geostore fetch failed, retrying",
					"id", id, "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		gs = result
		return nil
	})
	if err != nil {
		var te *TransportError
		if errors.Is(err, ErrNotFound) || errors.As(err, &te) {
			return nil, err
		}
		// retry.Do returns the bare context error when cancelled between attempts.
		return nil, &TransportError{Err: err}
	}

	c.logger.Debug("geostore fetched", "id", id, "attempts", attempt)
	return gs, nil
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) (*Geostore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/vnd.api+json, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response %s", resp.Status),
		}
	}

	var doc document
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&doc); err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	gs := doc.geostore()
	if gs.Geometry() == nil {
		return nil, ErrNotFound
	}
	return gs, nil
}
