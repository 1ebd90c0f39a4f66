package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply of POST /chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// APIClient sends chat messages to a running fiplan server
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewAPIClient creates a client for the API rooted at baseURL
func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &APIClient{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: client}
}

// Reply implements Provider by calling POST {base}/chat
func (c *APIClient) Reply(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned %d", resp.StatusCode)
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode chat reply: %w", err)
	}
	return out.Reply, nil
}
