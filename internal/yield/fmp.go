package yield

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultFMPBaseURL is the Financial Modeling Prep stable API
const DefaultFMPBaseURL = "https://financialmodelingprep.com/stable"

// FMPProvider computes trailing dividend yields from Financial Modeling Prep
// dividend history and quotes.
type FMPProvider struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewFMPProvider creates a provider. A nil client uses a 10 second timeout.
func NewFMPProvider(apiKey string, client *http.Client) *FMPProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FMPProvider{
		APIKey:     apiKey,
		BaseURL:    DefaultFMPBaseURL,
		HTTPClient: client,
		Now:        time.Now,
	}
}

type fmpDividend struct {
	Date     string  `json:"date"`
	Dividend float64 `json:"dividend"`
}

type fmpQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// SymbolMatch is one result of a symbol search
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type,omitempty"`
}

type fmpSearchResult struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	ExchangeShortName string `json:"exchangeShortName"`
	Exchange          string `json:"exchange"`
	Type              string `json:"type"`
}

// DividendYield sums the last four dividends and divides by the current price.
func (p *FMPProvider) DividendYield(ctx context.Context, symbol string) (Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return Quote{}, ErrMissingSymbol
	}
	if p.APIKey == "" {
		return Quote{}, ErrMissingAPIKey
	}

	q := Quote{Symbol: symbol, Source: SourceFMP, LastUpdated: p.Now().UTC()}

	var dividends []fmpDividend
	if err := p.get(ctx, "/dividends", url.Values{"symbol": {symbol}}, &dividends); err != nil {
		return Quote{}, fmt.Errorf("failed to fetch dividends for %s: %w", symbol, err)
	}
	if len(dividends) == 0 {
		q.Message = "No dividend data available"
		return q, nil
	}

	var quotes []fmpQuote
	if err := p.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &quotes); err != nil || len(quotes) == 0 {
		q.Message = "Could not calculate yield without price data"
		return q, nil
	}

	var annual float64
	for i := 0; i < len(dividends) && i < 4; i++ {
		annual += dividends[i].Dividend
	}
	price := quotes[0].Price
	if price > 0 && annual > 0 {
		q.DividendYield = round2(annual / price * 100)
	}
	q.Price = price
	q.AnnualDividend = round2(annual)
	return q, nil
}

// Search finds symbols by company name or partial ticker
func (p *FMPProvider) Search(ctx context.Context, query string) ([]SymbolMatch, error) {
	if p.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	var results []fmpSearchResult
	params := url.Values{"query": {query}, "limit": {"10"}}
	if err := p.get(ctx, "/search", params, &results); err != nil {
		return nil, fmt.Errorf("failed to search symbols: %w", err)
	}

	matches := make([]SymbolMatch, 0, len(results))
	for _, r := range results {
		exchange := r.ExchangeShortName
		if exchange == "" {
			exchange = r.Exchange
		}
		matches = append(matches, SymbolMatch{Symbol: r.Symbol, Name: r.Name, Exchange: exchange, Type: r.Type})
	}
	return matches, nil
}

func (p *FMPProvider) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("apikey", p.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusForbidden:
		return ErrInvalidAPIKey
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
