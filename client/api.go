// Package client implements the browser-side half of the auth flow: an API
// client that carries the session cookie, a single-flight auth-state machine,
// and an advisory route guard. None of it is a security boundary - the server
// middleware is the sole authority.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/jmolina/warden/core"
)

// API is the server surface the state machine depends on.
type API interface {
	Me(ctx context.Context) (*core.Identity, error)
	Register(ctx context.Context, email, password string) (*core.Identity, error)
	Login(ctx context.Context, email, password string) (*core.Identity, error)
	Logout(ctx context.Context) error
}

// APIError is a non-2xx response with the server's reason, surfaced verbatim
// to the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the auth endpoints. The cookie jar stands in for the
// browser: the session cookie is stored and re-attached automatically and its
// value is never inspected.
type Client struct {
	base string
	http *http.Client
}

var _ API = (*Client)(nil)

// New builds a Client for a base URL like "http://localhost:5000/api/auth".
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userEnvelope struct {
	Message string         `json:"message"`
	User    *core.Identity `json:"user"`
}

func (c *Client) Me(ctx context.Context) (*core.Identity, error) {
	var identity core.Identity
	if err := c.do(ctx, http.MethodGet, "/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *Client) Register(ctx context.Context, email, password string) (*core.Identity, error) {
	return c.submitCredentials(ctx, "/register", email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (*core.Identity, error) {
	return c.submitCredentials(ctx, "/login", email, password)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) submitCredentials(ctx context.Context, path, email, password string) (*core.Identity, error) {
	var envelope userEnvelope
	err := c.do(ctx, http.MethodPost, path, credentialsBody{Email: email, Password: password}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.User == nil {
		return nil, &APIError{Status: http.StatusOK, Message: "malformed server response"}
	}
	return envelope.User, nil
}

// do performs one round trip. Non-2xx responses become *APIError carrying the
// server's message; transport failures come back as-is so callers can tell
// "server said no" from "no answer at all".
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: messageFrom(raw, resp.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func messageFrom(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(status)
}
