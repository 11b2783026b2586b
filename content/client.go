package content

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

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 8 << 20
)

// CMSClient resolves a Bundle from a headless CMS GraphQL endpoint.
type CMSClient struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewCMSClient returns a CMSClient posting Query to endpoint. token, when set, is
// sent as a bearer token. A zero timeout uses a 10 second default.
func NewCMSClient(endpoint, token string, timeout time.Duration) *CMSClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CMSClient{
		endpoint: strings.TrimSpace(endpoint),
		token:    strings.TrimSpace(token),
		http:     &http.Client{Timeout: timeout},
	}
}

// Fetch runs Query against the CMS.
func (c *CMSClient) Fetch(ctx context.Context) (Bundle, error) {
	if c == nil || c.endpoint == "" {
		return Bundle{}, ErrNotFound
	}
	payload, err := json.Marshal(graphQLRequest{Query: Query, OperationName: OperationName})
	if err != nil {
		return Bundle{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Bundle{}, fmt.Errorf("content: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Bundle{}, fmt.Errorf("content: request %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Bundle{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return Bundle{}, fmt.Errorf("content: remote status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Bundle{}, fmt.Errorf("content: read response: %w", err)
	}
	return DecodeResponse(body)
}
