// Package webclient provides the HTTP client wrapper all facades issue requests through.
package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-petr/bank-e2e/pkg/configpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransportError indicates that an HTTP call could not complete at all.
// There is no response to inspect when it is returned.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Envelope is the normalized response returned for every request.
//
// Non-2xx statuses are not errors at this layer. Asserting on the status
// is the caller's responsibility.
type Envelope struct {
	StatusCode int
	Header     http.Header
	Elapsed    time.Duration
	Body       []byte
}

// Decode unmarshals the response body into v.
func (e *Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

// Client issues requests against the configured base target with default headers.
//
// It performs no retries and no caching. Retry policy is applied per test
// case one level up.
type Client struct {
	base       string
	authToken  string
	logEnabled bool
	logger     zerolog.Logger
	httpClient *http.Client
}

// New returns a Client configured from an explicit Config snapshot.
func New(config configpkg.Config, logger zerolog.Logger) *Client {
	return &Client{
		base:       config.BaseTarget(),
		authToken:  config.AuthToken,
		logEnabled: config.LoggingEnabled,
		logger:     logger,
		httpClient: &http.Client{},
	}
}

// Request issues one HTTP call against path and returns the normalized response.
//
// body, when non-nil, is JSON encoded. The request carries Content-Type and
// Accept headers and, when a token is configured, Authorization.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reqBody io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request %s %s: %w", method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	elapsed := time.Since(start)

	if c.logEnabled {
		c.logger.Info().
			Str("method", method).
			Str("path", path).
			Int("status_code", res.StatusCode).
			Str("latency", elapsed.String()).
			Int("body_bytes", len(resBody)).
			Msg("request completed")
	}

	return &Envelope{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Elapsed:    elapsed,
		Body:       resBody,
	}, nil
}

// Get issues a GET request against path.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.Request(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with the given body against path.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Request(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with the given body against path.
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Request(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request against path.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Request(ctx, http.MethodDelete, path, nil)
}
