package output

import (
	"fmt"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a report. The
// inputs are expected to have their defaults applied.
func GenerateAssumptions(in domain.FIInputs) []string {
	ret := "unset"
	if in.AssumedAnnualReturn != nil {
		ret = fmt.Sprintf("%.1f%%", *in.AssumedAnnualReturn*100)
	}
	return []string{
		fmt.Sprintf("Safe withdrawal rate: %.1f%% of liquid assets per year", in.SafeWithdrawalRate*100),
		fmt.Sprintf("Investment return: %s annually, compounded monthly", ret),
		fmt.Sprintf("Monthly savings of %s added after each month's growth", FormatCurrency(in.MonthlyNonInvestmentSavings)),
		"Portfolio and retirement accounts are liquid; home value is not",
		fmt.Sprintf("Projection horizon: %d years", int(in.MaxYears)),
	}
}
