// Package geo resolves device coordinates and reverse-geocodes them
// into a city and state for location-aware chat queries.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Place is the city/state pair extracted from a reverse-geocode lookup.
type Place struct {
	City  string
	State string
}

// Geocoder reverse-geocodes coordinates through a nominatim-style HTTP
// endpoint.
type Geocoder struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// DefaultGeocoderURL is the public nominatim reverse endpoint.
const DefaultGeocoderURL = "https://nominatim.openstreetmap.org/reverse"

// NewGeocoder creates a reverse geocoder. An empty baseURL selects the
// public nominatim endpoint.
func NewGeocoder(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocoderURL
	}
	return &Geocoder{
		baseURL:   baseURL,
		userAgent: "bloodflow/1.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type reverseResponse struct {
	Address map[string]string `json:"address"`
}

// Reverse looks up the place at the given coordinates. The city falls
// back through city, town, village, county; the state through state,
// region. Missing fields come back empty rather than failing.
func (g *Geocoder) Reverse(ctx context.Context, latitude, longitude float64) (Place, error) {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return Place{}, fmt.Errorf("failed to parse URL: %w", err)
	}
	q := u.Query()
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("addressdetails", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Place{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocoding failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Place{}, fmt.Errorf("reverse geocoding failed: %d - %s", resp.StatusCode, string(body))
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Place{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return Place{
		City:  firstOf(decoded.Address, "city", "town", "village", "county"),
		State: firstOf(decoded.Address, "state", "region"),
	}, nil
}

func firstOf(address map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := address[key]; v != "" {
			return v
		}
	}
	return ""
}
