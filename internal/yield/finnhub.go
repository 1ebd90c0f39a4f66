package yield

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultFinnhubBaseURL is the Finnhub REST API
const DefaultFinnhubBaseURL = "https://finnhub.io/api/v1"

// Finnhub metric fields holding a yield in percent, most specific first
var finnhubYieldFields = []string{
	"dividendYieldIndicatedAnnual",
	"dividendYield",
	"dividendYieldTTM",
	"annualDividendYield",
}

// Finnhub metric fields holding a per-share dividend
var finnhubDividendFields = []string{
	"dividendPerShareAnnual",
	"dividendPerShareTTM",
	"dividendPerShare",
}

// FinnhubProvider reads dividend yields from Finnhub company metrics,
// deriving the yield from dividend per share and price when no yield is
// reported.
type FinnhubProvider struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewFinnhubProvider creates a provider. A nil client uses a 10 second timeout.
func NewFinnhubProvider(apiKey string, client *http.Client) *FinnhubProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FinnhubProvider{
		APIKey:     apiKey,
		BaseURL:    DefaultFinnhubBaseURL,
		HTTPClient: client,
		Now:        time.Now,
	}
}

type finnhubQuote struct {
	Current float64 `json:"c"`
}

type finnhubMetrics struct {
	Metric map[string]any `json:"metric"`
}

type finnhubSearch struct {
	Result []struct {
		Symbol      string `json:"symbol"`
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"result"`
}

// firstMetric returns the first numeric field present. The metric object
// also carries dates as strings.
func firstMetric(m map[string]any, fields []string) (float64, bool) {
	for _, f := range fields {
		if v, ok := m[f].(float64); ok {
			return v, true
		}
	}
	return 0, false
}

// DividendYield implements Provider.
func (p *FinnhubProvider) DividendYield(ctx context.Context, symbol string) (Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return Quote{}, ErrMissingSymbol
	}
	if p.APIKey == "" {
		return Quote{}, ErrMissingAPIKey
	}

	var quote finnhubQuote
	if err := p.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return Quote{}, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	var metrics finnhubMetrics
	if err := p.get(ctx, "/stock/metric", url.Values{"symbol": {symbol}, "metric": {"all"}}, &metrics); err != nil {
		return Quote{}, fmt.Errorf("failed to fetch metrics for %s: %w", symbol, err)
	}
	if metrics.Metric == nil {
		return Quote{}, fmt.Errorf("no dividend data found for %s", symbol)
	}

	q := Quote{Symbol: symbol, Source: SourceFinnhub, LastUpdated: p.Now().UTC(), Price: quote.Current}
	if y, ok := firstMetric(metrics.Metric, finnhubYieldFields); ok {
		q.DividendYield = round2(y)
		return q, nil
	}
	if dps, ok := firstMetric(metrics.Metric, finnhubDividendFields); ok && dps > 0 && quote.Current > 0 {
		q.AnnualDividend = round2(dps)
		q.DividendYield = round2(dps / quote.Current * 100)
		return q, nil
	}
	q.Message = "No dividend data available"
	return q, nil
}

// Search finds symbols by company name or partial ticker
func (p *FinnhubProvider) Search(ctx context.Context, query string) ([]SymbolMatch, error) {
	if p.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	var res finnhubSearch
	if err := p.get(ctx, "/search", url.Values{"q": {query}}, &res); err != nil {
		return nil, fmt.Errorf("failed to search symbols: %w", err)
	}

	n := min(len(res.Result), 10)
	matches := make([]SymbolMatch, 0, n)
	for _, r := range res.Result[:n] {
		matches = append(matches, SymbolMatch{Symbol: r.Symbol, Name: r.Description, Type: r.Type})
	}
	return matches, nil
}

func (p *FinnhubProvider) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Finnhub-Token", p.APIKey)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidAPIKey
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
