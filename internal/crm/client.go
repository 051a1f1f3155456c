package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single create call against the hosted service.
const DefaultTimeout = 15 * time.Second

// Client is a RecordCreator backed by the hosted CRM data service.
// Records are created via POST {base}/v1/{entityType}.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests and
// callers that need custom transports).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a hosted data-service client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Create persists one record and returns its server-assigned id.
// A 400 or 422 response maps to *ValidationError; any other failure,
// including transport errors, maps to *NetworkError.
func (c *Client) Create(ctx context.Context, rec Record) (string, error) {
	entity := rec.Entity()

	body, err := json.Marshal(rec)
	if err != nil {
		return "", &NetworkError{Entity: entity, Err: fmt.Errorf("encode record: %w", err)}
	}

	url := fmt.Sprintf("%s/v1/%s", c.baseURL, entity)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &NetworkError{Entity: entity, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &NetworkError{Entity: entity, Err: err}
	}
	defer resp.Body.Close()

	// Cap the response read; create responses are tiny.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &NetworkError{Entity: entity, Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var out createResponse
		if err := json.Unmarshal(data, &out); err != nil || out.ID == "" {
			return "", &NetworkError{Entity: entity, Err: fmt.Errorf("malformed create response: %q", truncate(data, 200))}
		}
		return out.ID, nil

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return "", &ValidationError{Entity: entity, Message: remoteMessage(data, resp.StatusCode)}

	default:
		return "", &NetworkError{Entity: entity, Err: fmt.Errorf("service returned %d: %s", resp.StatusCode, remoteMessage(data, resp.StatusCode))}
	}
}

// remoteMessage extracts the service's error message, falling back to the
// raw body or status code.
func remoteMessage(data []byte, status int) string {
	var er errorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Error != "" {
		return er.Error
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return truncate([]byte(msg), 200)
	}
	return http.StatusText(status)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
