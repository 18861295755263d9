package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"quote-storefront/internal/config"
	"time"
)

// GeoClient resolves the coarse location of an IP address.
type GeoClient interface {
	Lookup(ctx context.Context, ip string) (*GeoLocation, error)
}

type GeoLocation struct {
	IP        string  `json:"ip"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Org       string  `json:"org"`

	// set by the provider on lookup failures with a 200 status
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

type geoClientImpl struct {
	httpClient *http.Client
	baseApiURL string
}

func NewGeoClient(cfg *config.Geo) GeoClient {
	return &geoClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
	}
}

func (c *geoClientImpl) Lookup(ctx context.Context, ip string) (*GeoLocation, error) {
	if ip == "" {
		return nil, fmt.Errorf("empty ip address")
	}

	reqURL := fmt.Sprintf("%s/%s/json/", c.baseApiURL, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geo lookup error %d: %s", resp.StatusCode, string(b))
	}

	var loc GeoLocation
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, fmt.Errorf("decode geo response: %w", err)
	}
	if loc.Error {
		return nil, fmt.Errorf("geo lookup rejected: %s", loc.Reason)
	}

	return &loc, nil
}
