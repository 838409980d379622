// Package api is the HTTP transport to the cuenta backend. It owns request
// building, auth headers and the mapping of transport and status failures
// into the client error taxonomy. Raw *http errors never leave this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dquisbert/cartera/internal/apperrors"
	"github.com/dquisbert/cartera/internal/logger"
)

const defaultTimeout = 10 * time.Second

// TokenSource provides the current access token for the Authorization
// header. Absence means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() (string, bool)
}

type Config struct {
	// Backend base URL, e.g. http://localhost:8000
	// Required to be set
	BaseURL string

	// Source of the bearer token. May be nil for unauthenticated clients
	Tokens TokenSource

	// Per request timeout
	// If not set then default is used
	Timeout time.Duration

	Logger logger.Logger

	// Underlying HTTP client, mostly for tests
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	tokens  TokenSource
	timeout time.Duration
	client  *http.Client
	logger  logger.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL must not be empty")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOp()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  cfg.Tokens,
		timeout: cfg.Timeout,
		client:  cfg.HTTPClient,
		logger:  cfg.Logger,
	}, nil
}

// do sends one JSON request and decodes a successful response into out.
// Failures come back already classified: NetworkError when no response was
// received, AuthError for 4xx, ServerError for 5xx.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error while encoding request body. Err: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error while creating request. Err: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.AccessToken(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Request failed before a response", "method", method, "path", path, "error", err)
		return &apperrors.NetworkError{Err: err}
	}
	defer resp.Body.Close() // nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.NetworkError{Err: err}
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.Warn("Server error", "method", method, "path", path, "status_code", resp.StatusCode)
		return &apperrors.ServerError{Status: resp.StatusCode}
	case resp.StatusCode >= http.StatusBadRequest:
		return newAuthError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("error while decoding response. Err: %w", err)
		}
	}
	return nil
}
