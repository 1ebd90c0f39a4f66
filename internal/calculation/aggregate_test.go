package calculation

import (
	"testing"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() domain.Plan {
	return domain.Plan{
		Name: "sample",
		Personal: domain.PersonalInfo{
			Career:       "Engineer",
			City:         "Denver",
			AnnualIncome: 60000,
		},
		Portfolio: domain.PortfolioState{
			TotalValue: 100000,
			Holdings: []domain.Holding{
				{Symbol: "SCHD", PercentOfPortfolio: 60, AnnualYieldPercent: 3.25},
				{Symbol: "VTI", PercentOfPortfolio: 40, AnnualYieldPercent: 1.45},
			},
		},
		RentalIncome: []domain.IncomeSource{
			{Name: "Duplex", MonthlyAmount: 900},
			{Name: "Garage", MonthlyAmount: 150},
		},
		SavingsIncome: []domain.IncomeSource{{Name: "HYSA", MonthlyAmount: 50}},
		OtherIncome:   []domain.IncomeSource{{Name: "Side gig", MonthlyAmount: 300}},
		RetirementAccounts: []domain.RetirementAccount{
			{Type: "401k", Balance: 50000},
		},
		Houses: []domain.House{
			{Type: "rental", Name: "Duplex", Equity: 80000, MortgagePayment: 700, GeneratesRental: true, MonthlyRentalIncome: 1200},
			{Type: "vacation", Name: "Cabin", PaidOff: true, EstimatedValue: 250000},
		},
		Expenses: []domain.ExpenseItem{
			{Name: "Groceries", MonthlyAmount: 600},
			{Name: "Duplex Mortgage", MonthlyAmount: 500},
			{Name: "Utilities", MonthlyAmount: 200},
		},
	}
}

func TestBlendedYieldAndDividends(t *testing.T) {
	holdings := samplePlan().Portfolio.Holdings
	blended := BlendedYield(holdings)
	assert.InDelta(t, 2.53, blended, 1e-12)
	assert.InDelta(t, 210.8333333333333, MonthlyDividendIncome(100000, blended), 1e-9)

	assert.Zero(t, BlendedYield(nil))
	assert.Zero(t, MonthlyDividendIncome(0, 4))
	assert.Zero(t, MonthlyDividendIncome(100000, 0))
}

func TestIncomeTotals(t *testing.T) {
	sources := []domain.IncomeSource{
		{Name: "Dividends", MonthlyAmount: 200, Kind: domain.IncomeDividend},
		{Name: "Duplex", MonthlyAmount: 1000, Kind: domain.IncomeRental},
		{Name: "HYSA", MonthlyAmount: 40, Kind: domain.IncomeSavings},
		{Name: "Royalties", MonthlyAmount: 60, Kind: domain.IncomeOther},
		{Name: "Job", MonthlyAmount: 5000, Kind: domain.IncomeJob},
	}

	assert.Equal(t, 1000.0, SumIncome(sources, domain.IncomeRental))
	assert.Equal(t, 6300.0, SumIncome(sources, ""))
	assert.Equal(t, 1300.0, TotalPassiveIncome(sources))
	// Non-portfolio income includes savings interest
	assert.Equal(t, 1100.0, NonPortfolioIncome(sources))
}

func TestAssetTotals(t *testing.T) {
	plan := samplePlan()
	assert.Equal(t, 50000.0, RetirementTotal(plan.RetirementAccounts))
	assert.Equal(t, 330000.0, HouseValueTotal(plan.Houses))
	assert.Equal(t, 1300.0, TotalExpenses(plan.Expenses))
}

func TestSavingsRate(t *testing.T) {
	assert.Zero(t, SavingsRate(0, 100))
	assert.Equal(t, 25.0, SavingsRate(4000, 3000))
	assert.Equal(t, -50.0, SavingsRate(2000, 3000))
}

func TestSyncRentalIncome(t *testing.T) {
	plan := samplePlan()
	rentals := SyncRentalIncome(plan.RentalIncome, plan.Houses)

	require.Len(t, rentals, 2)
	assert.Equal(t, domain.IncomeSource{Name: "Garage", MonthlyAmount: 150, Kind: domain.IncomeRental}, rentals[0])
	assert.Equal(t, domain.IncomeSource{Name: "Duplex", MonthlyAmount: 1200, Kind: domain.IncomeRental}, rentals[1])

	// Input untouched
	assert.Equal(t, domain.IncomeKind(""), plan.RentalIncome[0].Kind)
	assert.Len(t, plan.RentalIncome, 2)
}

func TestSyncMortgageExpenses(t *testing.T) {
	plan := samplePlan()
	expenses := SyncMortgageExpenses(plan.Expenses, plan.Houses)

	assert.Equal(t, []domain.ExpenseItem{
		{Name: "Groceries", MonthlyAmount: 600},
		{Name: "Utilities", MonthlyAmount: 200},
		{Name: "Duplex Mortgage", MonthlyAmount: 700},
	}, expenses)

	// Paid off houses and zero payments add nothing
	houses := []domain.House{
		{Name: "Home", PaidOff: true, EstimatedValue: 300000, MortgagePayment: 1500},
		{Name: "Lot", MortgagePayment: 0},
	}
	assert.Empty(t, SyncMortgageExpenses(nil, houses))
}

func TestBuildSnapshot(t *testing.T) {
	snap := BuildSnapshot(samplePlan())

	assert.InDelta(t, 2.53, snap.BlendedYieldPercent, 1e-12)
	assert.InDelta(t, 210.8333333333333, snap.MonthlyDividendIncome, 1e-9)
	assert.Equal(t, 1350.0, snap.RentalIncome)
	assert.Equal(t, 50.0, snap.SavingsIncome)
	assert.Equal(t, 300.0, snap.OtherIncome)
	assert.Equal(t, 5000.0, snap.JobIncome)
	assert.InDelta(t, 1910.8333333333333, snap.TotalPassiveIncome, 1e-9)
	assert.Equal(t, 1700.0, snap.NonPortfolioIncome)
	assert.Equal(t, 1500.0, snap.TotalExpenses)
	assert.Equal(t, 50000.0, snap.RetirementValue)
	assert.Equal(t, 330000.0, snap.HouseValue)
	assert.Equal(t, 150000.0, snap.LiquidAssets)
	assert.InDelta(t, 6910.833333333333, snap.TotalMonthlyIncome(), 1e-9)

	in := snap.GoalInputs()
	assert.Equal(t, snap.Expenses, in.Expenses)
	assert.Equal(t, 100000.0, in.CurrentPortfolioValue)
}

func TestBuildSnapshot_EmptyPlan(t *testing.T) {
	snap := BuildSnapshot(domain.Plan{})
	assert.Empty(t, snap.Income)
	assert.Empty(t, snap.Expenses)
	assert.Zero(t, snap.TotalPassiveIncome)
	assert.Zero(t, snap.LiquidAssets)
}

func TestFIInputsFor(t *testing.T) {
	snap := BuildSnapshot(samplePlan())
	in := FIInputsFor(snap, domain.Assumptions{}, 2025)

	assert.Equal(t, 150000.0, in.CurrentLiquidAssets)
	assert.Equal(t, 330000.0, in.IlliquidAssetValue)
	assert.InDelta(t, 5410.833333333333, in.MonthlyNonInvestmentSavings, 1e-9)
	assert.Equal(t, 18000.0, in.AnnualExpenses)
	assert.Equal(t, 2025, in.CurrentCalendarYear)

	// Overspending clamps savings to zero
	snap.TotalExpenses = 100000
	assert.Zero(t, FIInputsFor(snap, domain.Assumptions{}, 2025).MonthlyNonInvestmentSavings)
}
