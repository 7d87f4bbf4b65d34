// Package directory wraps the blood bank directory's read-only HTTP API
// behind typed request functions. It is purely a transport adapter: no
// caching, no retries. Non-2xx responses are hard failures for the caller
// to interpret.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/haemic/bloodflow/internal/model"
)

// StatesResponse is the envelope returned by the states endpoint.
type StatesResponse struct {
	States       []model.State `json:"states"`
	TotalResults int           `json:"totalResults"`
}

// DistrictsResponse is the envelope returned by the districts endpoint.
type DistrictsResponse struct {
	StateName    *string          `json:"stateName"`
	StateID      string           `json:"stateId"`
	Districts    []model.District `json:"districts"`
	TotalResults int              `json:"totalResults"`
}

// StockResponse is the envelope returned by the stock-nearby endpoint.
type StockResponse struct {
	Latitude     *float64           `json:"latitude"`
	Longitude    *float64           `json:"longitude"`
	Location     string             `json:"location"`
	Stocks       []model.BloodStock `json:"stocks"`
	TotalResults int                `json:"totalResults"`
}

// Client issues requests against the directory's base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a directory client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListStates fetches all states.
func (c *Client) ListStates(ctx context.Context) (*StatesResponse, error) {
	var out StatesResponse
	if err := c.get(ctx, c.baseURL+"/states", &out); err != nil {
		return nil, fmt.Errorf("failed to fetch states: %w", err)
	}
	return &out, nil
}

// ListDistricts fetches the districts of one state.
func (c *Client) ListDistricts(ctx context.Context, stateID string) (*DistrictsResponse, error) {
	u, err := url.Parse(c.baseURL + "/districts")
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	q := u.Query()
	q.Set("stateId", stateID)
	u.RawQuery = q.Encode()

	var out DistrictsResponse
	if err := c.get(ctx, u.String(), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch districts: %w", err)
	}
	return &out, nil
}

// ListStock fetches the stock list for a state/district/blood-type
// selection. Empty districtID and bloodType fall back to the wire
// sentinels "-1" and "all".
func (c *Client) ListStock(ctx context.Context, stateID, districtID, bloodType string) (*StockResponse, error) {
	if districtID == "" {
		districtID = model.DistrictAny
	}
	if bloodType == "" {
		bloodType = model.BloodTypeAll
	}

	u, err := url.Parse(c.baseURL + "/stock-nearby")
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	q := u.Query()
	q.Set("stateId", stateID)
	q.Set("districtId", districtID)
	q.Set("bloodType", bloodType)
	u.RawQuery = q.Encode()

	var out StockResponse
	if err := c.get(ctx, u.String(), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch stock nearby: %w", err)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("Requesting directory data", "url", rawURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}
