// Package apiclient talks to the storefront REST API under /api.
package apiclient

import (
	"bytes"
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
)

type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Token   string        `mapstructure:"token"`
}

type Client struct {
	c      *Config
	base   *url.URL
	client *http.Client
}

func New(c *Config) (*Client, error) {
	if c.BaseURL == "" {
		return nil, errors.New("api base url is required")
	}
	base, err := url.Parse(strings.TrimRight(c.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", c.BaseURL, err)
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		c:      c,
		base:   base,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// APIError is a non-2xx answer from the storefront.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// IsNotFound reports whether err is a 404 from the storefront.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

func (cl *Client) endpoint(path string) string {
	u := *cl.base
	u.Path = strings.TrimRight(u.Path, "/") + "/api/" + strings.TrimLeft(path, "/")
	return u.String()
}

func (cl *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request to %s: %w", method, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.c.Token)
	}
	return req, nil
}

// Do sends in as JSON (when not nil) and decodes the answer into out (when
// not nil).
func (cl *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := cl.newRequest(ctx, method, cl.endpoint(path), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return cl.send(req, path, out)
}

func (cl *Client) send(req *http.Request, path string, out any) error {
	start := time.Now()
	resp, err := cl.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body from %s %s: %w", req.Method, path, err)
	}
	slog.Default().DebugContext(req.Context(), "storefront call",
		slog.String("method", req.Method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode/100 != 2 {
		return &APIError{
			Method:  req.Method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(data),
			Body:    string(data),
		}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, path, err)
	}
	return nil
}

// errorMessage pulls {"error": ...} or {"message": ...} out of a failure body.
func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
