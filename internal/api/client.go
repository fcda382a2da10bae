package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v45/github"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com/"

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "github-user-fetcher/1.0"

// Fetcher performs a GET and decodes the body as a JSON object.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) (map[string]any, error)
}

// Client is an unauthenticated Fetcher on top of go-github's transport.
type Client struct {
	client *github.Client
}

// NewClient creates a client for baseURL. A nil httpClient uses a client
// with a 10 second timeout.
func NewClient(baseURL, userAgent string, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	gh := github.NewClient(httpClient)
	gh.BaseURL = u
	gh.UserAgent = userAgent

	return &Client{client: gh}, nil
}

// BaseURL returns the API root the client resolves endpoints against.
func (c *Client) BaseURL() string {
	return c.client.BaseURL.String()
}

// Fetch GETs endpoint, which may be absolute or relative to the base URL.
// Non-2xx responses are returned as *github.ErrorResponse. A body that is not
// a JSON object decodes to an empty map.
func (c *Client) Fetch(ctx context.Context, endpoint string) (map[string]any, error) {
	req, err := c.client.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}

	var body bytes.Buffer
	if _, err := c.client.Do(ctx, req, &body); err != nil {
		return nil, fmt.Errorf("GET %s: %w", req.URL, err)
	}

	return ParseJSON(body.Bytes()), nil
}

// ParseJSON decodes data as a JSON object, absorbing any failure into an
// empty map.
func ParseJSON(data []byte) map[string]any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return map[string]any{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// String reads key from m when it holds a non-empty string.
func String(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
