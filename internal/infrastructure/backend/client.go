// Package backend is the HTTP client for the external REST server that owns
// every household, resident, fee and payment record.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

var _ ports.Backend = (*Client)(nil)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 8 << 20
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend %d", e.Status)
}

// Is lets callers match backend statuses against domain sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrInvalidInput:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

// Observer is told about every completed round trip. status is 0 when the
// request never got a response.
type Observer func(method, route string, status int, elapsed time.Duration)

// Client talks JSON to the backend. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observe    Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver registers a round-trip observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observe = o }
}

// NewClient builds a Client for baseURL. A zero timeout uses defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends one request and decodes the JSON answer. A 2xx body that is not
// JSON comes back as a string; an empty body as nil.
func (c *Client) Do(ctx context.Context, method, path, token string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.report(method, path, 0, start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("backend: %s %s: %w: %w", method, path, domain.ErrBackendUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("backend: %s %s: %w: %v", method, path, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	c.report(method, path, resp.StatusCode, start)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: read response: %w: %v", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return decodeBody(raw), nil
}

// Ping checks that the backend answers at all. Any HTTP response, even an
// error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %w: %v", domain.ErrBackendUnavailable, err)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) report(method, path string, status int, start time.Time) {
	if c.observe != nil {
		c.observe(method, Route(path), status, time.Since(start))
	}
}

func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(trimmed)
	}
	return normalizeNumbers(v)
}

// normalizeNumbers turns json.Number into int64 when integral, else float64,
// so large identifiers survive decoding exactly.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeNumbers(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = normalizeNumbers(item)
		}
		return x
	default:
		return v
	}
}

// errorMessage extracts the server's explanation from an error body: the
// "message" field, else "error", else a short plain-text body.
func errorMessage(raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"message", "error"} {
			if s, ok := body[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
