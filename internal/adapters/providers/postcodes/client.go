package postcodes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/pkg/config"
	"github.com/S3nssay/catwalkframes-sub000/pkg/ukpostcode"
)

const (
	defaultHTTPTimeout = 8 * time.Second
	lookupCacheTTL     = 60 * 60 * 24 * 7
)

// Client resolves UK postcodes against a postcodes.io-style lookup service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      providers.CacheProvider
}

// NewClient creates a new postcode lookup client.
func NewClient(cfg *config.PostcodesConfig, cache providers.CacheProvider) *Client {
	return NewClientWithOptions(cfg.BaseURL, cache, nil)
}

// NewClientWithOptions allows overriding the HTTP client (used for tests).
func NewClientWithOptions(baseURL string, cache providers.CacheProvider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		cache:      cache,
	}
}

type lookupResponse struct {
	Status int `json:"status"`
	Result struct {
		Postcode      string `json:"postcode"`
		Region        string `json:"region"`
		AdminDistrict string `json:"admin_district"`
		AdminWard     string `json:"admin_ward"`
	} `json:"result"`
}

// Lookup resolves a postcode to region/district metadata. A 404 from the
// service maps to ErrPostcodeNotFound; other failures are returned as-is.
func (c *Client) Lookup(ctx context.Context, postcode string) (*providers.PostcodeRecord, error) {
	normalized := ukpostcode.Normalize(postcode)
	if normalized == "" {
		return nil, providers.ErrPostcodeNotFound
	}

	cacheKey := "postcode:lookup:" + normalized
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var record providers.PostcodeRecord
			if err := json.Unmarshal(cached, &record); err == nil && record.Postcode != "" {
				return &record, nil
			}
		}
	}

	reqURL := fmt.Sprintf("%s/postcodes/%s", c.baseURL, url.PathEscape(normalized))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build postcode lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("postcode lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, providers.ErrPostcodeNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("postcode lookup returned status %d", resp.StatusCode)
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode postcode lookup response: %w", err)
	}

	record := providers.PostcodeRecord{
		Postcode:      payload.Result.Postcode,
		Region:        payload.Result.Region,
		AdminDistrict: payload.Result.AdminDistrict,
		AdminWard:     payload.Result.AdminWard,
	}
	if record.Postcode == "" {
		record.Postcode = normalized
	}

	if c.cache != nil {
		if data, err := json.Marshal(record); err == nil {
			_ = c.cache.Set(ctx, cacheKey, data, lookupCacheTTL)
		}
	}

	return &record, nil
}
