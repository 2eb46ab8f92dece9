package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Sentinel addresses returned in place of a real address.
const (
	AddressLookupDisabled = "Address lookup disabled"
	AddressNotFound       = "Address not found"
	AddressLookupError    = "Error retrieving address"
)

const (
	// DefaultBaseURL is the Google Maps Platform host.
	DefaultBaseURL = "https://maps.googleapis.com"
	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 5 * time.Second

	placeholderMarker = "YOUR_"
	statusOK          = "OK"
)

// Client resolves coordinates to a formatted address with the Google Maps Geocoding API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-lookup timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a reverse geocoding client. An empty or placeholder key yields a client
// that never calls the network and always reports AddressLookupDisabled.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether a usable credential is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && !strings.Contains(c.apiKey, placeholderMarker)
}

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
	Status  string          `json:"status"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
}

// Resolve returns the highest-confidence formatted address for the coordinates.
// It never fails: every error is reported as one of the sentinel addresses.
func (c *Client) Resolve(ctx context.Context, lat, lng float64) string {
	if !c.Enabled() {
		return AddressLookupDisabled
	}

	address, err := c.reverseGeocode(ctx, lat, lng)
	if err != nil {
		log.Warn().Err(err).Float64("lat", lat).Float64("lng", lng).Msg("reverse geocoding failed")
		return AddressLookupError
	}
	if address == "" {
		log.Debug().Float64("lat", lat).Float64("lng", lng).Msg("reverse geocoding returned no address")
		return AddressNotFound
	}
	return address
}

// reverseGeocode returns an empty address when the API answered with a non-OK status.
func (c *Client) reverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("key", c.apiKey)

	u := fmt.Sprintf("%s/maps/api/geocode/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("geocoder: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocoder: request failed: %w", err)
	}
	defer resp.Body.Close()

	var geoResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return "", fmt.Errorf("geocoder: decoding response (HTTP %d): %w", resp.StatusCode, err)
	}

	if geoResp.Status != statusOK || len(geoResp.Results) == 0 {
		log.Debug().Str("status", geoResp.Status).Int("http_status", resp.StatusCode).Msg("reverse geocoding not OK")
		return "", nil
	}

	return geoResp.Results[0].FormattedAddress, nil
}
