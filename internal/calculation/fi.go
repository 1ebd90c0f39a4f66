package calculation

import (
	"fmt"
	"math"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// Projection defaults
const (
	DefaultSafeWithdrawalRate  = 0.04
	DefaultAssumedAnnualReturn = 0.05
	DefaultMaxMonths           = 600
	DefaultMaxYears            = 50.0
)

// Accepted assumption ranges
const (
	MaxSafeWithdrawalRate = 0.20
	MinAssumedReturn      = -0.50
	MaxAssumedReturn      = 0.50
)

// WithDefaults fills unset optional inputs with the projection defaults. An
// explicit zero return is kept.
func WithDefaults(in domain.FIInputs) domain.FIInputs {
	if in.SafeWithdrawalRate == 0 {
		in.SafeWithdrawalRate = DefaultSafeWithdrawalRate
	}
	if in.AssumedAnnualReturn == nil {
		in.AssumedAnnualReturn = domain.Rate(DefaultAssumedAnnualReturn)
	}
	if in.MaxMonths == 0 {
		in.MaxMonths = DefaultMaxMonths
	}
	if in.MaxYears == 0 {
		in.MaxYears = DefaultMaxYears
	}
	return in
}

// ValidateInputs checks the rates and limits of a projection request. Zero
// and unset values are accepted since they take the defaults.
func ValidateInputs(in domain.FIInputs) error {
	swr := in.SafeWithdrawalRate
	if math.IsNaN(swr) || swr < 0 || swr > MaxSafeWithdrawalRate {
		return fmt.Errorf("safe withdrawal rate must be between 0%% and 20%%, got %.2f%%", swr*100)
	}
	if r := in.AssumedAnnualReturn; r != nil && (math.IsNaN(*r) || *r < MinAssumedReturn || *r > MaxAssumedReturn) {
		return fmt.Errorf("assumed annual return must be between -50%% and 50%%, got %.2f%%", *r*100)
	}
	if in.MaxMonths < 0 || in.MaxMonths > DefaultMaxMonths {
		return fmt.Errorf("max months must be between 0 and %d, got %d", DefaultMaxMonths, in.MaxMonths)
	}
	if math.IsNaN(in.MaxYears) || in.MaxYears < 0 || in.MaxYears > DefaultMaxYears {
		return fmt.Errorf("max years must be between 0 and %.0f, got %g", DefaultMaxYears, in.MaxYears)
	}
	if in.CurrentCalendarYear < 0 {
		return fmt.Errorf("current calendar year must not be negative, got %d", in.CurrentCalendarYear)
	}
	return nil
}

// ProjectFIYear simulates month-by-month growth of liquid assets until they
// reach the FIRE number.
func ProjectFIYear(in domain.FIInputs) domain.FIProjection {
	return projectFIYear(in, NopLogger{})
}

func projectFIYear(in domain.FIInputs, logger Logger) domain.FIProjection {
	in = WithDefaults(in)

	fireNumber := in.AnnualExpenses / in.SafeWithdrawalRate
	result := domain.FIProjection{
		ProjectedYear:           domain.Never,
		FireNumber:              fireNumber,
		CurrentNetWorth:         in.CurrentLiquidAssets + in.IlliquidAssetValue,
		FinalNetWorth:           in.CurrentLiquidAssets + in.IlliquidAssetValue,
		ProjectedMonthlySavings: in.MonthlyNonInvestmentSavings,
		CurrentLiquidAssets:     in.CurrentLiquidAssets,
		IlliquidAssetValue:      in.IlliquidAssetValue,
	}

	if in.MonthlyNonInvestmentSavings <= 0 || fireNumber <= 0 {
		logger.Debugf("FI projection skipped: monthly savings %.2f, FIRE number %.2f", in.MonthlyNonInvestmentSavings, fireNumber)
		return result
	}

	growth := 1 + *in.AssumedAnnualReturn/12
	liquid := in.CurrentLiquidAssets
	months := 0
	for liquid < fireNumber && months < in.MaxMonths {
		// Growth before contribution. The explicit conversion keeps the
		// multiply and add from being fused.
		liquid = float64(liquid * growth)
		liquid += in.MonthlyNonInvestmentSavings
		months++

		if months <= 3 || months%12 == 0 {
			logger.Debugf("FI projection month %d: liquid %.2f of %.2f", months, liquid, fireNumber)
		}
	}

	result.MonthsSimulated = months
	result.FinalNetWorth = liquid + in.IlliquidAssetValue
	result.Reached, result.ProjectedYear, result.YearsToGo = fiYear(in, months, liquid >= fireNumber)

	logger.Debugf("FI projection complete after %d months: year %s, liquid %.2f", months, result.ProjectedYear, liquid)
	return result
}

// fiYear converts the months simulated into the FI calendar year. Targets
// reached at or beyond MaxYears count as never.
func fiYear(in domain.FIInputs, months int, reached bool) (bool, domain.FIYear, int) {
	years := float64(months) / 12
	if !reached || years >= in.MaxYears {
		return false, domain.Never, 0
	}
	return true, domain.FIYear(math.Ceil(float64(in.CurrentCalendarYear) + years)), int(math.Ceil(years))
}

// FireNumber is annual expenses divided by the safe withdrawal rate
// (default 4%).
func FireNumber(annualExpenses, safeWithdrawalRate float64) float64 {
	if safeWithdrawalRate == 0 {
		safeWithdrawalRate = DefaultSafeWithdrawalRate
	}
	return annualExpenses / safeWithdrawalRate
}

// FireProgress is liquid assets as a percentage of the FIRE number, capped at 100.
func FireProgress(liquidAssets, fireNumber float64) float64 {
	if fireNumber <= 0 {
		return 0
	}
	return math.Min(100, liquidAssets/fireNumber*100)
}
