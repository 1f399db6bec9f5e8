// Package api implements the REST client of the AdMax service.
// Idempotent GET requests are retried on network and 5xx errors with backoff,
// mutations are sent once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
)

// ErrNotFound returned for 404 responses
var ErrNotFound = errors.New("not found")

// errPermanent stops retries, the real error is kept by the caller
var errPermanent = errors.New("permanent error")

// Error is a non-2xx response of the service
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrNotFound) work for 404 responses
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Params for New
type Params struct {
	BaseURL    string        // service base url, e.g. https://api.example.com/v1
	Token      string        // bearer token, optional
	BrandID    string        // brand id sent as X-Brand-Id header
	Timeout    time.Duration // per-request timeout, default 30s
	Retries    int           // attempts for GET requests, default 3
	RetryDelay time.Duration // initial retry delay, default 500ms
	HTTPClient *http.Client  // optional, for tests
}

// Client makes requests to the AdMax service
type Client struct {
	baseURL    string
	token      string
	brandID    string
	retries    int
	retryDelay time.Duration
	httpClient *http.Client
}

// New makes a client with defaults applied
func New(p Params) *Client {
	res := &Client{
		baseURL:    strings.TrimSuffix(p.BaseURL, "/"),
		token:      p.Token,
		brandID:    p.BrandID,
		retries:    p.Retries,
		retryDelay: p.RetryDelay,
		httpClient: p.HTTPClient,
	}
	if res.retries <= 0 {
		res.retries = 3
	}
	if res.retryDelay <= 0 {
		res.retryDelay = 500 * time.Millisecond
	}
	if res.httpClient == nil {
		timeout := p.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		res.httpClient = &http.Client{Timeout: timeout}
	}
	return res
}

// BrandID returns brand the client works for
func (c *Client) BrandID() string { return c.brandID }

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error
	rptr := repeater.New(&strategy.Backoff{Repeats: c.retries, Duration: c.retryDelay, Factor: 2, Jitter: true})
	err := rptr.Do(ctx, func() error {
		lastErr = c.do(ctx, http.MethodGet, path, query, nil, out)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return errPermanent
		}
		log.Printf("[DEBUG] retry GET %s, %v", path, lastErr)
		return lastErr
	}, errPermanent)
	if err != nil && lastErr != nil {
		return lastErr
	}
	return err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("make %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.brandID != "" {
		req.Header.Set("X-Brand-Id", c.brandID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// retryable reports whether the error worth another attempt
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return true // network errors
}
