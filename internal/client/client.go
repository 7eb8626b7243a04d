// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client talks to the First Sun API and admin functions over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/handler/api"
	"github.com/olegiv/firstsun-go/internal/validation"
)

// Client configuration constants
const (
	RequestTimeout   = 30 * time.Second // HTTP request timeout
	MaxResponseBytes = 4 << 20          // Largest response body read
	UserAgent        = "firstsun-client/1.0"
)

// ErrUnauthorized matches API errors with status 401.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Message
}

// Is matches ErrUnauthorized and auth.ErrInvalidToken on 401, and
// auth.ErrSessionNotFound when the server reports a missing session.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized, auth.ErrInvalidToken:
		return e.StatusCode == http.StatusUnauthorized
	case auth.ErrSessionNotFound:
		msg := strings.ToLower(e.Message)
		return msg == auth.ErrSessionNotFound.Error() || strings.Contains(msg, "session missing")
	}
	return false
}

// FieldErrors returns the per-field validation messages, if any.
func (e *APIError) FieldErrors() validation.Errors {
	if len(e.Fields) == 0 {
		return nil
	}
	return validation.Errors(e.Fields)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsSessionMissing reports whether the server no longer knows the session.
func IsSessionMissing(err error) bool {
	return errors.Is(err, auth.ErrSessionNotFound)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAccessToken sets the initial bearer token.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLanguage sets the Accept-Language sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
	lang  string
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: RequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAccessToken replaces the bearer token. An empty token makes requests
// anonymous.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// AccessToken returns the current bearer token.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetLanguage changes the language requested for localized responses.
func (c *Client) SetLanguage(lang string) {
	c.mu.Lock()
	c.lang = lang
	c.mu.Unlock()
}

func (c *Client) language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

// do sends a JSON request to path and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if lang := c.language(); lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status}
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	}
	return apiErr
}

// envelope is the API success wrapper with the payload left undecoded.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *api.Meta       `json:"meta"`
}

// getData performs a request against the API and decodes the data field.
func getData[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	var env envelope
	if err := c.do(ctx, method, handler.RouteAPI+path, body, &env); err != nil {
		return out, err
	}
	if len(env.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decoding data: %w", err)
	}
	return out, nil
}
