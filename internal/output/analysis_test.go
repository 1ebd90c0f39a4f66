package output

import (
	"testing"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeReport(t *testing.T) {
	report := buildTestReport()

	rec := AnalyzeReport(report)
	assert.Equal(t, "Food", rec.GoalName)
	assert.Equal(t, 66.67, rec.Progress)
	assert.Equal(t, 200000.0, rec.AdditionalInvestment)
	assert.Equal(t, 500.0, rec.MonthlyGap)

	// 0.3 - 0.1 is 0.19999999999999998 in float64
	report.NextGoal.MonthlyIncomeNeeded = 0.3
	report.NextGoal.CurrentMonthlyIncome = 0.1
	assert.Equal(t, 0.2, AnalyzeReport(report).MonthlyGap)

	report.NextGoal.CurrentMonthlyIncome = 1
	assert.Zero(t, AnalyzeReport(report).MonthlyGap)

	report.NextGoal = nil
	assert.Equal(t, Recommendation{}, AnalyzeReport(report))
}

func TestGenerateAssumptions_ZeroReturn(t *testing.T) {
	in := buildTestReport().Inputs
	in.AssumedAnnualReturn = domain.Rate(0)
	assert.Equal(t, "Investment return: 0.0% annually, compounded monthly", GenerateAssumptions(in)[1])
}

func TestGenerateAssumptions(t *testing.T) {
	lines := GenerateAssumptions(buildTestReport().Inputs)
	assert.Equal(t, []string{
		"Safe withdrawal rate: 4.0% of liquid assets per year",
		"Investment return: 5.0% annually, compounded monthly",
		"Monthly savings of $3,500.00 added after each month's growth",
		"Portfolio and retirement accounts are liquid; home value is not",
		"Projection horizon: 50 years",
	}, lines)
}
