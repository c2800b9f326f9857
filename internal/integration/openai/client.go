package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lorenzodc/catalyst-api/pkg/logger"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client is a thin pass-through client for the OpenAI HTTP API. Only the
// calls the feature endpoints need are wrapped.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// Config configures the OpenAI client.
type Config struct {
	APIKey  string
	BaseURL string
}

// NewClient creates a new OpenAI client.
func NewClient(cfg Config, log *logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

// errorResponse is the error envelope the API returns on non-2xx statuses.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// postJSON sends a JSON request and decodes the JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("openai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openai: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openai: decode response: %w", err)
	}
	return nil
}

// postRaw sends a prepared request and returns the raw response bytes.
func (c *Client) postRaw(req *http.Request, path string) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError(path, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}
	return data, nil
}

func (c *Client) apiError(path string, resp *http.Response) error {
	var apiErr errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
		c.log.Errorw("OpenAI API error", "path", path, "status", resp.StatusCode, "message", apiErr.Error.Message)
		return fmt.Errorf("openai: %s: %s (status %d)", path, apiErr.Error.Message, resp.StatusCode)
	}
	c.log.Errorw("OpenAI API error", "path", path, "status", resp.StatusCode)
	return fmt.Errorf("openai: %s: unexpected status %d", path, resp.StatusCode)
}
