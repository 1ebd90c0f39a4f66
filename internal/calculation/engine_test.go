package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, year int) {
	t.Helper()
	SetNowFunc(func() time.Time { return time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { SetNowFunc(time.Now) })
}

func TestCalculationEngine_Evaluate(t *testing.T) {
	fixedClock(t, 2025)
	ce := NewCalculationEngine()

	report, err := ce.Evaluate(context.Background(), samplePlan())
	require.NoError(t, err)

	assert.Equal(t, "sample", report.Name)
	require.Len(t, report.Goals, 3)
	assert.Equal(t, []string{"Utilities", "Groceries", "Duplex Mortgage"}, []string{
		report.Goals[0].Name, report.Goals[1].Name, report.Goals[2].Name,
	})
	for _, g := range report.Goals {
		assert.True(t, g.Achieved)
	}
	require.NotNil(t, report.NextGoal)
	assert.Equal(t, 3, report.NextGoal.Tier)

	p := report.Projection
	assert.Equal(t, domain.FIYear(2029), p.ProjectedYear)
	assert.Equal(t, 4, p.YearsToGo)
	assert.Equal(t, 46, p.MonthsSimulated)
	assert.Equal(t, 450000.0, p.FireNumber)
	assert.Equal(t, 480000.0, p.CurrentNetWorth)

	s := report.Summary
	assert.InDelta(t, 6910.833333333333, s.TotalMonthlyIncome, 1e-9)
	assert.Equal(t, 1500.0, s.TotalMonthlyExpenses)
	assert.InDelta(t, 78.29494754612324, s.SavingsRatePercent, 1e-9)
	assert.InDelta(t, 33.333333333333336, s.FireProgressPercent, 1e-9)
	assert.Equal(t, 300000.0, s.StillNeeded)
	assert.Equal(t, 3, s.GoalsAchieved)
	assert.Equal(t, 3, s.GoalsTotal)
	assert.Equal(t, 100.0, s.NextGoalProgressPercent)
}

func TestCalculationEngine_EvaluateValidatesAssumptions(t *testing.T) {
	ce := NewCalculationEngine()

	plan := samplePlan()
	plan.Assumptions.SafeWithdrawalRate = 0.5
	_, err := ce.Evaluate(context.Background(), plan)
	assert.ErrorContains(t, err, "safe withdrawal rate")

	plan = samplePlan()
	plan.Assumptions.AssumedAnnualReturn = domain.Rate(-0.9)
	_, err = ce.Evaluate(context.Background(), plan)
	assert.ErrorContains(t, err, "assumed annual return")
}

func TestCalculationEngine_EvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCalculationEngine().Evaluate(ctx, samplePlan())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_EvaluateAll(t *testing.T) {
	fixedClock(t, 2025)
	ce := NewCalculationEngine()

	lean := samplePlan()
	lean.Name = ""
	lean.Expenses = []domain.ExpenseItem{{Name: "Groceries", MonthlyAmount: 400}}

	broke := domain.Plan{
		Personal: domain.PersonalInfo{AnnualIncome: 12000},
		Expenses: []domain.ExpenseItem{{Name: "Rent", MonthlyAmount: 2500}},
	}

	comparison, err := ce.EvaluateAll(context.Background(), map[string]domain.Plan{
		"lean":    lean,
		"broke":   broke,
		"current": samplePlan(),
	})
	require.NoError(t, err)
	require.Len(t, comparison.Reports, 3)

	// Reports are ordered by plan key
	assert.Equal(t, "broke", comparison.Reports[0].Name)
	assert.Equal(t, "lean", comparison.Reports[2].Name)

	assert.Equal(t, "lean", comparison.EarliestFIPlan)
	assert.Equal(t, "sample", comparison.MostGoalsPlan)
	assert.Equal(t, "lean", comparison.HighestSavings)
	assert.Contains(t, comparison.KeyConsiderations, "broke spends more than it earns")
}

func TestCalculationEngine_SetLoggerNil(t *testing.T) {
	ce := NewCalculationEngine()
	ce.SetLogger(nil)
	assert.IsType(t, NopLogger{}, ce.Logger)
}
