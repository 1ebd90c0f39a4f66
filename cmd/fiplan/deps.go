package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fiplan/goal-tracker/internal/advisor"
	"github.com/fiplan/goal-tracker/internal/calculation"
	"github.com/fiplan/goal-tracker/internal/config"
	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/internal/store"
	"github.com/fiplan/goal-tracker/internal/yield"
)

func newHTTPClient(s *config.Settings) *http.Client {
	return &http.Client{
		Timeout:   s.RequestTimeout,
		Transport: yield.NewLoggingTransport(nil, logger),
	}
}

// openStore opens the local database, creating its directory if needed.
func openStore(s *config.Settings) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(s.StorePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return store.New(s.StorePath)
}

// marketData is a direct upstream: yields plus symbol search.
type marketData interface {
	yield.Provider
	Search(ctx context.Context, query string) ([]yield.SymbolMatch, error)
}

// newMarketData returns the configured upstream, or nil when its API key is
// missing.
func newMarketData(s *config.Settings, client *http.Client) marketData {
	switch s.YieldProvider {
	case config.YieldFinnhub:
		if s.FinnhubAPIKey != "" {
			return yield.NewFinnhubProvider(s.FinnhubAPIKey, client)
		}
	default:
		if s.FMPAPIKey != "" {
			return yield.NewFMPProvider(s.FMPAPIKey, client)
		}
	}
	return nil
}

// newYieldProvider picks the dividend-yield source: a running fiplan server,
// the configured upstream, or nothing (fallback estimates only).
func newYieldProvider(s *config.Settings, client *http.Client) yield.Provider {
	if s.APIBaseURL != "" {
		return yield.NewAPIClient(s.APIBaseURL, client)
	}
	if md := newMarketData(s, client); md != nil {
		return md
	}
	logger.Debug("No market data API key configured; using estimated yields", "provider", s.YieldProvider)
	return nil
}

func newResolver(s *config.Settings, client *http.Client, cache yield.Cache, offline bool) *yield.Resolver {
	var provider yield.Provider
	if !offline {
		provider = newYieldProvider(s, client)
	}
	r := yield.NewResolver(provider, cache, logger)
	r.Concurrency = s.BatchConcurrency
	return r
}

// newAdvisorProvider builds the configured tip provider. A missing API key
// yields advisor.ErrNoProvider.
func newAdvisorProvider(ctx context.Context, s *config.Settings, client *http.Client) (advisor.Provider, error) {
	switch s.AdvisorProvider {
	case config.AdvisorAPI:
		return advisor.NewAPIClient(s.APIBaseURL, client), nil
	case config.AdvisorGemini:
		if s.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini: %w (set GEMINI_API_KEY)", advisor.ErrNoProvider)
		}
		return advisor.NewGeminiProvider(ctx, s.GeminiAPIKey, s.GeminiModel, "", client)
	default:
		if s.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic: %w (set ANTHROPIC_API_KEY)", advisor.ErrNoProvider)
		}
		return advisor.NewAnthropicProvider(s.AnthropicAPIKey, s.AnthropicModel, option.WithHTTPClient(client)), nil
	}
}

// loadPlanFile reads and validates a plan file.
func loadPlanFile(path string) (*domain.Plan, error) {
	return config.NewInputParser().LoadFromFile(path)
}

// resolveHoldingYields fills in holdings whose yield is zero through the
// resolver. Plans without such holdings never touch the network.
func resolveHoldingYields(ctx context.Context, r *yield.Resolver, plan *domain.Plan) {
	var missing []string
	for _, h := range plan.Portfolio.Holdings {
		if h.AnnualYieldPercent == 0 {
			missing = append(missing, h.Symbol)
		}
	}
	if len(missing) == 0 {
		return
	}

	yields := make(map[string]float64, len(missing))
	for _, q := range r.LookupBatch(ctx, missing) {
		yields[q.Symbol] = q.DividendYield
		logger.Debug("Resolved dividend yield", "symbol", q.Symbol, "yield", q.DividendYield, "source", q.Source)
	}
	for i, h := range plan.Portfolio.Holdings {
		if h.AnnualYieldPercent == 0 {
			plan.Portfolio.Holdings[i].AnnualYieldPercent = yields[yield.NormalizeSymbol(h.Symbol)]
		}
	}
}

func newEngine() *calculation.CalculationEngine {
	ce := calculation.NewCalculationEngine()
	ce.Debug = settings != nil && settings.Debug
	ce.SetLogger(logger)
	return ce
}
