package landregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/pkg/config"
)

const defaultHTTPTimeout = 10 * time.Second

// ErrNoIndexData indicates the index returned no usable data points for
// the requested area and month.
var ErrNoIndexData = errors.New("no index data for area")

// Client fetches UK House Price Index data points from the Land Registry
// linked-data API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Land Registry HPI client.
func NewClient(cfg *config.LandRegistryConfig) *Client {
	return NewClientWithOptions(cfg.BaseURL, nil)
}

// NewClientWithOptions allows overriding the HTTP client (used for tests).
func NewClientWithOptions(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type indexResponse struct {
	Result struct {
		Items []struct {
			Date         string  `json:"date"`
			AveragePrice float64 `json:"averagePrice"`
			SalesVolume  int     `json:"salesVolume"`
		} `json:"items"`
	} `json:"result"`
}

// LatestIndex fetches the latest monthly data point for the area code.
func (c *Client) LatestIndex(ctx context.Context, areaCode string, month time.Time) (*providers.PriceIndexPoint, error) {
	if areaCode == "" {
		return nil, errors.New("area code is required")
	}

	reqURL := fmt.Sprintf(
		"%s/data/ukhpi/region/%s/month/%s?_format=json",
		c.baseURL,
		url.PathEscape(areaCode),
		month.Format("2006-01"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build index request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("index request returned status %d", resp.StatusCode)
	}

	var payload indexResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode index response: %w", err)
	}

	// The API returns the month's data points oldest-first; take the last
	// one carrying a price.
	items := payload.Result.Items
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].AveragePrice > 0 {
			return &providers.PriceIndexPoint{
				Date:         items[i].Date,
				AveragePrice: items[i].AveragePrice,
				SalesVolume:  items[i].SalesVolume,
			}, nil
		}
	}

	return nil, ErrNoIndexData
}
