package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Relay forwards a submission to wherever leads are collected.
type Relay interface {
	Send(ctx context.Context, submission Submission) error
}

// HTTPRelay posts submissions as JSON to the intake endpoint.
type HTTPRelay struct {
	endpoint string
	client   *http.Client
}

type relayConfig struct {
	client *http.Client
}

// RelayOption customizes an HTTPRelay.
type RelayOption func(*relayConfig)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) RelayOption {
	return func(c *relayConfig) {
		c.client = client
	}
}

// NewHTTPRelay returns a relay targeting endpoint.
func NewHTTPRelay(endpoint string, options ...RelayOption) *HTTPRelay {
	cfg := relayConfig{client: &http.Client{Timeout: 15 * time.Second}}
	for _, option := range options {
		option(&cfg)
	}
	return &HTTPRelay{endpoint: endpoint, client: cfg.client}
}

// Send posts the submission. Non-2xx responses and transport failures both
// surface as ExternalCallError.
func (r *HTTPRelay) Send(ctx context.Context, submission Submission) error {
	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("leads: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leads: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return &ExternalCallError{Endpoint: r.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ExternalCallError{Endpoint: r.endpoint, StatusCode: resp.StatusCode}
	}
	return nil
}
