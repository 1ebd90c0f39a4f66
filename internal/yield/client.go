package yield

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIClient queries a running fiplan server for dividend yields
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewAPIClient creates a client for the API rooted at baseURL, e.g.
// http://localhost:5001/api
func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &APIClient{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: client}
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DividendYield calls GET {base}/dividend-yield?symbol=X
func (c *APIClient) DividendYield(ctx context.Context, symbol string) (Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return Quote{}, ErrMissingSymbol
	}

	endpoint := c.BaseURL + "/dividend-yield?" + url.Values{"symbol": {symbol}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("dividend yield request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return Quote{}, ErrRateLimited
		case http.StatusForbidden:
			return Quote{}, ErrInvalidAPIKey
		}
		return Quote{}, fmt.Errorf("dividend yield API returned %d: %s %s", resp.StatusCode, apiErr.Error, apiErr.Message)
	}

	var q Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return Quote{}, fmt.Errorf("failed to decode dividend yield: %w", err)
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	q.Source = SourceAPI
	return q, nil
}
