// Package legalapi provides an HTTP client for the legal-analysis backend.
// The backend is a black box: one POST per analysis, authenticated with a
// shared service key, returning an opaque JSON payload or an error body.
package legalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lexgrid/lexgrid/internal/port/analysis"
	"github.com/lexgrid/lexgrid/internal/resilience"
)

const analyzePath = "/api/analyses/"

// Client talks to the analysis backend. It implements analysis.Backend.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	breaker    *resilience.Breaker
}

// NewClient creates an analysis backend client. timeout is the per-call
// ceiling; a hung backend call runs until it expires, there is no cancel.
func NewClient(baseURL, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBreaker attaches a circuit breaker to all outgoing calls.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

// Analyze issues one analysis call and returns the backend's payload.
// A backend-reported error body and a transport failure are both returned
// as errors with a human-readable message.
func (c *Client) Analyze(ctx context.Context, req analysis.Request) (map[string]any, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis request: %w", err)
	}

	data, err := c.doRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal analysis response: %w", err)
	}

	if msg, ok := payload["error"].(string); ok && msg != "" {
		return nil, fmt.Errorf("backend error: %s", msg)
	}

	return payload, nil
}

func (c *Client) doRequest(ctx context.Context, body []byte) ([]byte, error) {
	var result []byte
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.serviceKey != "" {
			req.Header.Set("X-Service-Key", c.serviceKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode >= 400 {
			// Prefer the backend's own error message when the body carries one.
			var errBody struct {
				Error string `json:"error"`
			}
			if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
				return fmt.Errorf("backend error: %s", errBody.Error)
			}
			return fmt.Errorf("backend error %d: %s", resp.StatusCode, string(data))
		}

		result = data
		return nil
	}

	if c.breaker != nil {
		if err := c.breaker.Execute(call); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := call(); err != nil {
		return nil, err
	}
	return result, nil
}
