// Package assist implements the request/response assistant session: a
// one-shot question to the assistant backend per user message, with an
// append-only local message log.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the assistant text-generation endpoint.
type Client struct {
	httpClient *http.Client
	basePath   string
}

// NewClient creates an assistant client rooted at basePath.
func NewClient(basePath string) *Client {
	return &Client{
		basePath: strings.TrimRight(basePath, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type askRequest struct {
	Message string `json:"message"`
}

type askResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Ask sends one message to the assistant and returns its reply. No
// retry; any transport, status, or decode failure is a hard error.
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(askRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.basePath+"/api/voice-chat", strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		var decoded askResponse
		if json.NewDecoder(resp.Body).Decode(&decoded) == nil && decoded.Error != "" {
			return "", fmt.Errorf("assistant error: %s", decoded.Error)
		}
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("assistant API error: %d - %s", resp.StatusCode, string(respBody))
	}

	var decoded askResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return decoded.Response, nil
}
