package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/fiplan/goal-tracker/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Monte Carlo defaults
const (
	DefaultNumSimulations   = 1000
	DefaultAnnualVolatility = 0.15
	maxSimulations          = 100000
)

// seedFunc returns a seed when the config leaves it at zero (override for
// deterministic tests).
var seedFunc = func() uint64 { return uint64(time.Now().UnixNano()) }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() uint64) { seedFunc = f }

// MonteCarloConfig controls the randomized FI projection
type MonteCarloConfig struct {
	NumSimulations   int
	AnnualVolatility float64 // Standard deviation of the annual return; default 0.15
	Seed             uint64
	Concurrency      int // Parallel simulation workers; default 8
}

// PercentileRanges holds FI-year percentiles across simulated paths. Paths
// that never reach the FIRE number sort last.
type PercentileRanges struct {
	P10 domain.FIYear `json:"p10" yaml:"p10"`
	P25 domain.FIYear `json:"p25" yaml:"p25"`
	P50 domain.FIYear `json:"p50" yaml:"p50"`
	P75 domain.FIYear `json:"p75" yaml:"p75"`
	P90 domain.FIYear `json:"p90" yaml:"p90"`
}

// MonteCarloResult summarizes the simulated FI dates
type MonteCarloResult struct {
	NumSimulations      int              `json:"num_simulations" yaml:"num_simulations"`
	AnnualVolatility    float64          `json:"annual_volatility" yaml:"annual_volatility"`
	Seed                uint64           `json:"seed" yaml:"seed"`
	SuccessRate         float64          `json:"success_rate" yaml:"success_rate"` // Percent of paths reaching FI within the horizon
	Percentiles         PercentileRanges `json:"percentiles" yaml:"percentiles"`
	MedianFinalNetWorth float64          `json:"median_final_net_worth" yaml:"median_final_net_worth"`
}

type pathOutcome struct {
	months   int
	reached  bool
	netWorth float64
}

// SimulateFI repeats the FI projection with monthly returns drawn from a
// normal distribution around the assumed annual return. With zero volatility
// every path matches the deterministic projection.
func (ce *CalculationEngine) SimulateFI(ctx context.Context, in domain.FIInputs, cfg MonteCarloConfig) (*MonteCarloResult, error) {
	if err := ValidateInputs(in); err != nil {
		return nil, err
	}
	in = WithDefaults(in)
	if cfg.NumSimulations == 0 {
		cfg.NumSimulations = DefaultNumSimulations
	}
	if cfg.NumSimulations < 0 || cfg.NumSimulations > maxSimulations {
		return nil, fmt.Errorf("number of simulations must be between 1 and %d, got %d", maxSimulations, cfg.NumSimulations)
	}
	if cfg.AnnualVolatility < 0 || cfg.AnnualVolatility > 1 {
		return nil, fmt.Errorf("annual volatility must be between 0 and 1, got %.2f", cfg.AnnualVolatility)
	}
	if cfg.Seed == 0 {
		cfg.Seed = seedFunc()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}

	outcomes := make([]pathOutcome, cfg.NumSimulations)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i := range outcomes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each path owns its stream so results do not depend on scheduling
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(i)))
			outcomes[i] = simulatePath(in, cfg.AnnualVolatility, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := summarizePaths(in, outcomes)
	result.AnnualVolatility = cfg.AnnualVolatility
	result.Seed = cfg.Seed
	ce.logger().Debugf("Monte Carlo FI projection: %d paths, %.1f%% reach FI, median year %s",
		result.NumSimulations, result.SuccessRate, result.Percentiles.P50)
	return result, nil
}

func simulatePath(in domain.FIInputs, volatility float64, rng *rand.Rand) pathOutcome {
	fireNumber := in.AnnualExpenses / in.SafeWithdrawalRate
	liquid := in.CurrentLiquidAssets
	if in.MonthlyNonInvestmentSavings <= 0 || fireNumber <= 0 {
		return pathOutcome{netWorth: liquid + in.IlliquidAssetValue}
	}

	mean := *in.AssumedAnnualReturn / 12
	sd := volatility / math.Sqrt(12)
	months := 0
	for liquid < fireNumber && months < in.MaxMonths {
		r := mean + sd*rng.NormFloat64()
		liquid = float64(liquid * (1 + r))
		liquid += in.MonthlyNonInvestmentSavings
		months++
	}
	return pathOutcome{
		months:   months,
		reached:  liquid >= fireNumber,
		netWorth: liquid + in.IlliquidAssetValue,
	}
}

func summarizePaths(in domain.FIInputs, outcomes []pathOutcome) *MonteCarloResult {
	n := len(outcomes)
	years := make([]domain.FIYear, n)
	worth := make([]float64, n)
	successes := 0
	for i, o := range outcomes {
		var reached bool
		reached, years[i], _ = fiYear(in, o.months, o.reached)
		if reached {
			successes++
		}
		worth[i] = o.netWorth
	}

	// Never is the zero value, so it is ordered after every real year
	sort.Slice(years, func(i, j int) bool {
		a, b := years[i], years[j]
		if a.IsNever() || b.IsNever() {
			return !a.IsNever() && b.IsNever()
		}
		return a < b
	})
	sort.Float64s(worth)

	at := func(p float64) domain.FIYear { return years[int(p*float64(n-1))] }
	return &MonteCarloResult{
		NumSimulations: n,
		SuccessRate:    float64(successes) / float64(n) * 100,
		Percentiles: PercentileRanges{
			P10: at(0.10),
			P25: at(0.25),
			P50: at(0.50),
			P75: at(0.75),
			P90: at(0.90),
		},
		MedianFinalNetWorth: worth[(n-1)/2],
	}
}
