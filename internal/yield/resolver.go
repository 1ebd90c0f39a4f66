package yield

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Resolver looks up yields through a provider, an optional cache and an
// optional fallback table. With a fallback, lookups never fail for a valid
// symbol.
type Resolver struct {
	Provider    Provider // nil means fallback only
	Cache       Cache
	Fallback    *FallbackTable // nil means provider errors are returned
	Logger      *log.Logger
	Concurrency int
}

// Result is the outcome of one lookup in a batch
type Result struct {
	Symbol string
	Quote  Quote
	Err    error
}

// NewResolver creates a resolver with a fresh fallback table
func NewResolver(provider Provider, cache Cache, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		Provider:    provider,
		Cache:       cache,
		Fallback:    NewFallbackTable(nil),
		Logger:      logger,
		Concurrency: 4,
	}
}

// Lookup resolves one symbol. With a fallback table the only error is
// ErrMissingSymbol.
func (r *Resolver) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return Quote{}, ErrMissingSymbol
	}

	if r.Cache != nil {
		q, ok, err := r.Cache.GetYield(symbol)
		if err != nil {
			r.Logger.Warn("Yield cache read failed", "symbol", symbol, "error", err)
		} else if ok {
			r.Logger.Debug("Yield cache hit", "symbol", symbol, "yield", q.DividendYield)
			q.Source = SourceCache
			return q, nil
		}
	}

	lastErr := ErrMissingAPIKey
	if r.Provider != nil {
		q, err := r.Provider.DividendYield(ctx, symbol)
		if err == nil {
			if r.Cache != nil {
				if err := r.Cache.PutYield(q); err != nil {
					r.Logger.Warn("Yield cache write failed", "symbol", symbol, "error", err)
				}
			}
			return q, nil
		}
		lastErr = err
		r.Logger.Warn("Dividend yield lookup failed", "symbol", symbol, "error", err, "fallback", r.Fallback != nil)
	}

	if r.Fallback == nil {
		return Quote{}, lastErr
	}
	return r.Fallback.DividendYield(ctx, symbol)
}

// LookupEach resolves symbols concurrently. Blank and duplicate symbols are
// skipped; results keep the order of first appearance.
func (r *Resolver) LookupEach(ctx context.Context, symbols []string) []Result {
	seen := make(map[string]bool, len(symbols))
	results := make([]Result, 0, len(symbols))
	for _, s := range symbols {
		s = NormalizeSymbol(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		results = append(results, Result{Symbol: s})
	}

	var g errgroup.Group
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i := range results {
		g.Go(func() error {
			results[i].Quote, results[i].Err = r.Lookup(ctx, results[i].Symbol)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// LookupBatch is LookupEach keeping only the successful quotes.
func (r *Resolver) LookupBatch(ctx context.Context, symbols []string) []Quote {
	results := r.LookupEach(ctx, symbols)
	quotes := make([]Quote, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			quotes = append(quotes, res.Quote)
		}
	}
	return quotes
}
