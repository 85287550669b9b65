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

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/config"
	"golang.org/x/oauth2"
)

const maxResponseBytes = 8 << 20

// Client calls the upstream REST API on behalf of the signed-in user. Every
// call is a single attempt carrying the caller's bearer token.
type Client struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
}

func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   cfg.Timeout,
		transport: http.DefaultTransport,
	}
}

// httpClient wraps the base transport with the user's bearer token.
func (c *Client) httpClient(ctx context.Context, token string) *http.Client {
	base := &http.Client{Transport: c.transport, Timeout: c.timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	hc.Timeout = c.timeout
	return hc
}

// do sends one JSON request. Non-2xx responses become *APIError with the
// server's message or the fallback.
func (c *Client) do(ctx context.Context, method, path string, body any, fallback string) (json.RawMessage, error) {
	token, ok := TokenFromContext(ctx)
	if !ok {
		return nil, ErrNoToken
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", ErrUnavailable, method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, fallback),
		}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// errorMessage pulls "error" or "message" out of an error body.
func errorMessage(data []byte, fallback string) string {
	var body struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return fallback
	}
	if msg, ok := body.Error.(string); ok && strings.TrimSpace(msg) != "" {
		return msg
	}
	if nested, ok := body.Error.(map[string]any); ok {
		if msg, ok := nested["message"].(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	if strings.TrimSpace(body.Message) != "" {
		return body.Message
	}
	return fallback
}
