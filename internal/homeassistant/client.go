package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/nerrad567/hasp-designer/internal/infrastructure/config"
)

// Logger is the logging interface used by the client.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Client talks to the Home Assistant REST API.
//
// Thread Safety: all methods are safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	cfg     config.HomeAssistantConfig
	http    *http.Client
	logger  Logger
}

// New creates a Home Assistant client from configuration.
//
// Transient transport failures are retried with the configured retry budget;
// responses are never retried on 4xx statuses, so a confirmed 404 stays a
// confirmed 404.
func New(cfg config.HomeAssistantConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrBadConfig)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrBadConfig)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.Logger = nil
	rc.HTTPClient.Timeout = cfg.GetRequestTimeout()

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		cfg:     cfg,
		http:    rc.StandardClient(),
		logger:  noopLogger{},
	}, nil
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// get performs an authenticated GET and decodes the JSON response into out.
// A nil out discards the body. Non-2xx statuses other than 404 map to
// ErrUnavailable; 404 maps to ErrEntityNotFound.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrEntityNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}

// post performs an authenticated POST with a JSON body.
func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// ReloadPages triggers the openHASP load_pages service so deployed plates
// re-read their pages files.
func (c *Client) ReloadPages(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GetRequestTimeout())
	defer cancel()
	if err := c.post(ctx, "/api/services/openhasp/load_pages", map[string]any{}); err != nil {
		return fmt.Errorf("reloading openHASP pages: %w", err)
	}
	return nil
}
