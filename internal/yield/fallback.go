package yield

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// knownYields are local estimates used when no provider answers
var knownYields = map[string]float64{
	"AAPL": 0.52, "MSFT": 0.78, "JNJ": 2.65, "KO": 3.05, "PG": 2.45,
	"VZ": 6.45, "T": 7.25, "XOM": 3.55, "CVX": 3.75, "PFE": 3.95,
	"MRK": 2.85, "INTC": 1.45, "IBM": 4.65, "MMM": 3.35, "CAT": 2.15,
	"SPY": 1.35, "VOO": 1.40, "VTI": 1.45, "SCHD": 3.25, "VYM": 2.95,
}

// FallbackTable answers from the local table and estimates unknown symbols
// with a random yield in [1, 4).
type FallbackTable struct {
	mu  sync.Mutex
	rng *rand.Rand
	Now func() time.Time
}

// NewFallbackTable creates a table. A nil rng is seeded from the clock.
func NewFallbackTable(rng *rand.Rand) *FallbackTable {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &FallbackTable{rng: rng, Now: time.Now}
}

// Known returns the table entry for a symbol
func (f *FallbackTable) Known(symbol string) (float64, bool) {
	v, ok := knownYields[NormalizeSymbol(symbol)]
	return v, ok
}

// Estimate returns the table value or a random estimate rounded to cents
func (f *FallbackTable) Estimate(symbol string) float64 {
	if v, ok := f.Known(symbol); ok {
		return v
	}
	f.mu.Lock()
	r := f.rng.Float64()
	f.mu.Unlock()
	return round2(r*3 + 1)
}

// DividendYield implements Provider. It never fails for a non-empty symbol.
func (f *FallbackTable) DividendYield(_ context.Context, symbol string) (Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return Quote{}, ErrMissingSymbol
	}
	q := Quote{
		Symbol:        symbol,
		DividendYield: f.Estimate(symbol),
		LastUpdated:   f.Now().UTC(),
		Source:        SourceFallback,
	}
	if _, ok := f.Known(symbol); !ok {
		q.Message = "Estimated yield for unknown symbol"
	}
	return q, nil
}
