package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/printmg/internal/config"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 8 << 20

// TokenSource supplies the bearer token of the current session.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Client calls the print backend. It never retries; every failure is returned
// to the caller for an explicit resubmission.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// New creates a Client for the configured backend.
func New(cfg *config.APIConfig, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.TimeoutDuration()},
		tokens:     tokens,
		logger:     logger.With("system", "backend"),
	}
}

// BaseURL returns the backend root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) getJSON(ctx context.Context, path string, auth bool, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, auth, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, auth bool, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, body, contentType, auth, out)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, auth bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if auth {
		token, ok := c.tokens.Token(ctx)
		if !ok {
			return ErrMissingToken
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read response body: %w", ErrTransport, err)
	}

	c.logger.Debug("request completed", "method", method, "path", path, "status", resp.StatusCode)

	if auth && resp.StatusCode == http.StatusUnauthorized {
		return ErrTokenExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newServerError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}
	return nil
}

// IsAuthError reports whether err requires the user to sign in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) || errors.Is(err, ErrTokenExpired)
}
