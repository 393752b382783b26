// File: services/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// TokenSource yields the bearer token of the current session, or "" when anonymous.
type TokenSource func(ctx context.Context) (string, error)

// Client talks to the DocLink REST backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          TokenSource
	onUnauthorized func(ctx context.Context)
	logger         *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUnauthorizedHook registers the forced-logout transition run on every 401.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func NewClient(baseURL string, token TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		token:      token,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authMode int

const (
	authNone authMode = iota
	authOptional
	authRequired
)

func (c *Client) do(ctx context.Context, method, path string, mode authMode, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if mode != authNone && c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return fmt.Errorf("failed to read session token: %w", err)
		}
		if token == "" && mode == authRequired {
			c.unauthorized(ctx, method, path)
			return &APIError{Kind: ErrAuthExpired, Status: http.StatusUnauthorized, Method: method, Path: path, Message: "no authentication token"}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend unreachable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &APIError{Kind: ErrNetworkUnavailable, Method: method, Path: path, Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: ErrNetworkUnavailable, Method: method, Path: path, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: messageFrom(payload),
		}
		if resp.StatusCode == http.StatusUnauthorized && mode != authNone {
			c.unauthorized(ctx, method, path)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) unauthorized(ctx context.Context, method, path string) {
	c.logger.Warn("Backend rejected credentials; forcing logout", zap.String("method", method), zap.String("path", path))
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

func messageFrom(payload []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	return strings.TrimSpace(string(payload))
}
