package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound matches HTTP 404 responses from the history API.
var ErrNotFound = errors.New("execution not found")

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// GetExecution fetches the full snapshot of one execution, log included.
func (c *Client) GetExecution(ctx context.Context, id ID) (*Execution, error) {
	if id.IsZero() {
		return nil, errors.New("empty execution id")
	}
	var exec Execution
	if err := c.get(ctx, "/execution_log/long/"+url.PathEscape(id.String()), &exec); err != nil {
		return nil, fmt.Errorf("get execution %s: %w", id, err)
	}
	return &exec, nil
}

// ServiceHealth is one backing service as reported by the server.
type ServiceHealth struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// Health queries /api/health on the host serving BaseURL.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	var h HealthResponse
	if err := c.getURL(ctx, base.ResolveReference(&url.URL{Path: "/api/health"}).String(), &h); err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	return &h, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	return c.getURL(ctx, c.BaseURL+path, v)
}

func (c *Client) getURL(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
