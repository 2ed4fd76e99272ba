package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ManuelReschke/LeadFox/internal/pkg/env"
)

// Result is the normalized contact profile returned by the enrichment provider.
type Result struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Title    string `json:"title"`
	LinkedIn string `json:"linkedin"`
}

// Client looks up contact data for a lead at the external provider.
type Client interface {
	Lookup(ctx context.Context, query string) (*Result, error)
}

type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds the provider client from ENRICHMENT_API_URL and
// ENRICHMENT_API_KEY.
func NewHTTPClient() Client {
	return &httpClient{
		baseURL: env.GetEnv("ENRICHMENT_API_URL", "https://api.enrichment.example.com"),
		apiKey:  env.GetEnv("ENRICHMENT_API_KEY", ""),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) Lookup(ctx context.Context, query string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/v1/person?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrichment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoMatch
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment provider returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode enrichment response: %w", err)
	}
	return &result, nil
}
