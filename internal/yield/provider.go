// Package yield looks up annual dividend yields for ticker symbols.
package yield

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Quote sources
const (
	SourceFMP      = "fmp"
	SourceFinnhub  = "finnhub"
	SourceAPI      = "api"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

var (
	// ErrMissingSymbol is returned when a lookup has no symbol
	ErrMissingSymbol = errors.New("missing required parameter: symbol")
	// ErrRateLimited is returned when the upstream API answers 429
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrInvalidAPIKey is returned when the upstream API answers 403
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("API key not configured")
)

// Quote is the dividend yield of one symbol, in percent
type Quote struct {
	Symbol         string    `json:"symbol"`
	DividendYield  float64   `json:"dividendYield"`
	LastUpdated    time.Time `json:"lastUpdated"`
	Source         string    `json:"source"`
	Price          float64   `json:"price,omitempty"`
	AnnualDividend float64   `json:"annualDividend,omitempty"`
	Message        string    `json:"message,omitempty"`
}

// Provider looks up the dividend yield of a symbol
type Provider interface {
	DividendYield(ctx context.Context, symbol string) (Quote, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(ctx context.Context, symbol string) (Quote, error)

func (f ProviderFunc) DividendYield(ctx context.Context, symbol string) (Quote, error) {
	return f(ctx, symbol)
}

// Cache stores resolved quotes between runs
type Cache interface {
	GetYield(symbol string) (Quote, bool, error)
	PutYield(q Quote) error
}

// NormalizeSymbol trims and upper-cases a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
