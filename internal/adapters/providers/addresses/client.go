package addresses

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/pkg/config"
	"github.com/S3nssay/catwalkframes-sub000/pkg/ukpostcode"
)

const defaultHTTPTimeout = 8 * time.Second

// Client returns candidate addresses for a postcode or partial address
// term. Address lookup is independent of pricing; the handler degrades
// lookup failures to an empty candidate list.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new address lookup client.
func NewClient(cfg *config.AddressesConfig) *Client {
	return NewClientWithOptions(cfg.BaseURL, cfg.APIKey, nil)
}

// NewClientWithOptions allows overriding the HTTP client (used for tests).
func NewClientWithOptions(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type findResponse struct {
	Postcode  string `json:"postcode"`
	Addresses []struct {
		Line1 string `json:"line_1"`
		Line2 string `json:"line_2"`
		Town  string `json:"town_or_city"`
	} `json:"addresses"`
}

// FindAddresses returns zero or more candidate addresses for the term. The
// term is normalized as a postcode when it looks like one.
func (c *Client) FindAddresses(ctx context.Context, term string) ([]entities.AddressCandidate, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return []entities.AddressCandidate{}, nil
	}
	if ukpostcode.IsValidFormat(trimmed) {
		trimmed = ukpostcode.Normalize(trimmed)
	}

	reqURL := fmt.Sprintf("%s/find/%s", c.baseURL, url.PathEscape(trimmed))
	if c.apiKey != "" {
		reqURL += "?api-key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build address lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("address lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []entities.AddressCandidate{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("address lookup returned status %d", resp.StatusCode)
	}

	var payload findResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode address lookup response: %w", err)
	}

	postcode := payload.Postcode
	if postcode == "" {
		postcode = trimmed
	}

	candidates := make([]entities.AddressCandidate, 0, len(payload.Addresses))
	for _, addr := range payload.Addresses {
		if addr.Line1 == "" {
			continue
		}
		candidates = append(candidates, entities.AddressCandidate{
			Line1:    addr.Line1,
			Line2:    addr.Line2,
			Town:     addr.Town,
			Postcode: postcode,
		})
	}

	return candidates, nil
}
