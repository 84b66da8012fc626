package client

// http_client.go = handles HTTP client functionality for the churchhub CLI.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"churchhub/internal/microservices/http-api/dto"
)

// defines the HTTP client structure and methods
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Health calls /health, or /health/ready when ready is set. The decoded body is
// returned even for a 503 so the caller can show which check failed.
func (c *HTTPClient) Health(ready bool) (*dto.HealthResponse, error) {
	path := "/health"
	if ready {
		path = "/health/ready"
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close() // Ensure the response body is closed

	var result dto.HealthResponse
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("unexpected response with status %s: %w", response.Status, err)
	}
	if response.StatusCode != http.StatusOK {
		return &result, fmt.Errorf("server answered %s", response.Status)
	}
	return &result, nil
}
