// Package resources resolves and downloads the remote media referenced
// by resource-bearing journal entries.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Signer exchanges raw resource URLs for time-limited signed download
// URLs. Implementations must preserve input order and count.
type Signer interface {
	Resolve(ctx context.Context, rawURLs []string) ([]string, error)
}

// SigningClient calls the remote signing service over HTTP.
type SigningClient struct {
	client *resty.Client
}

// NewSigningClient creates a client for the signing service at baseURL.
func NewSigningClient(baseURL string, timeout time.Duration) *SigningClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &SigningClient{client: c}
}

type resolveRequest struct {
	URLs []string `json:"urls"`
}

type resolveResponse struct {
	Resources []string `json:"resources"`
}

// Resolve posts the raw URL list and returns the signed URLs in the
// same order.
func (s *SigningClient) Resolve(ctx context.Context, rawURLs []string) ([]string, error) {
	if len(rawURLs) == 0 {
		return nil, nil
	}

	reqBody := resolveRequest{URLs: rawURLs}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/resources/resolve")
	if err != nil {
		return nil, fmt.Errorf("signing request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("signing status %d: %s", resp.StatusCode(), resp.String())
	}

	var rr resolveResponse
	if err := json.Unmarshal(resp.Body(), &rr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return rr.Resources, nil
}
