package calculation

import (
	"github.com/fiplan/goal-tracker/internal/domain"
)

// BlendedYield is the allocation-weighted dividend yield in percent.
func BlendedYield(holdings []domain.Holding) float64 {
	var blended float64
	for _, h := range holdings {
		blended += h.AnnualYieldPercent * h.PercentOfPortfolio / 100
	}
	return blended
}

// MonthlyDividendIncome is the expected monthly dividend for a portfolio
// value at a blended yield. Non-positive inputs yield zero.
func MonthlyDividendIncome(totalValue, blendedYieldPercent float64) float64 {
	if totalValue <= 0 || blendedYieldPercent <= 0 {
		return 0
	}
	return totalValue * blendedYieldPercent / 100 / 12
}

// SumIncome totals the sources of one kind. An empty kind matches every source.
func SumIncome(sources []domain.IncomeSource, kind domain.IncomeKind) float64 {
	var total float64
	for _, s := range sources {
		if kind == "" || s.Kind == kind {
			total += s.MonthlyAmount
		}
	}
	return total
}

// TotalPassiveIncome totals every non-job source
func TotalPassiveIncome(sources []domain.IncomeSource) float64 {
	var total float64
	for _, s := range sources {
		if s.Kind.IsPassive() {
			total += s.MonthlyAmount
		}
	}
	return total
}

// NonPortfolioIncome is passive income that does not come from the dividend
// portfolio: rental, savings interest and other income.
func NonPortfolioIncome(sources []domain.IncomeSource) float64 {
	var total float64
	for _, s := range sources {
		switch s.Kind {
		case domain.IncomeRental, domain.IncomeSavings, domain.IncomeOther:
			total += s.MonthlyAmount
		}
	}
	return total
}

// TotalExpenses sums monthly expense amounts
func TotalExpenses(expenses []domain.ExpenseItem) float64 {
	var total float64
	for _, e := range expenses {
		total += e.MonthlyAmount
	}
	return total
}

// RetirementTotal sums retirement account balances
func RetirementTotal(accounts []domain.RetirementAccount) float64 {
	var total float64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}

// HouseValueTotal sums the illiquid value of all houses
func HouseValueTotal(houses []domain.House) float64 {
	var total float64
	for _, h := range houses {
		total += h.Value()
	}
	return total
}

// SavingsRate is the share of total income left after expenses, in percent.
// It is zero when there is no income.
func SavingsRate(totalIncome, totalExpenses float64) float64 {
	if totalIncome <= 0 {
		return 0
	}
	return (totalIncome - totalExpenses) / totalIncome * 100
}

// SyncRentalIncome returns the manual rental entries plus one entry per
// rental-generating house. Manual entries named after a house are replaced.
func SyncRentalIncome(manual []domain.IncomeSource, houses []domain.House) []domain.IncomeSource {
	houseNames := make(map[string]bool, len(houses))
	for _, h := range houses {
		houseNames[h.Name] = true
	}

	rentals := make([]domain.IncomeSource, 0, len(manual)+len(houses))
	for _, r := range manual {
		if houseNames[r.Name] {
			continue
		}
		r.Kind = domain.IncomeRental
		rentals = append(rentals, r)
	}
	for _, h := range houses {
		if h.GeneratesRental && h.MonthlyRentalIncome > 0 {
			rentals = append(rentals, domain.IncomeSource{
				Name:          h.Name,
				MonthlyAmount: h.MonthlyRentalIncome,
				Kind:          domain.IncomeRental,
			})
		}
	}
	return rentals
}

// SyncMortgageExpenses returns the manual expenses plus one "<house> Mortgage"
// entry per mortgaged house. Manual entries with those names are replaced.
func SyncMortgageExpenses(manual []domain.ExpenseItem, houses []domain.House) []domain.ExpenseItem {
	mortgageNames := make(map[string]bool, len(houses))
	for _, h := range houses {
		mortgageNames[h.MortgageExpenseName()] = true
	}

	expenses := make([]domain.ExpenseItem, 0, len(manual)+len(houses))
	for _, e := range manual {
		if mortgageNames[e.Name] {
			continue
		}
		expenses = append(expenses, e)
	}
	for _, h := range houses {
		if !h.PaidOff && h.MortgagePayment > 0 {
			expenses = append(expenses, domain.ExpenseItem{
				Name:          h.MortgageExpenseName(),
				MonthlyAmount: h.MortgagePayment,
			})
		}
	}
	return expenses
}

// BuildSnapshot derives fresh engine inputs from a plan. Nothing in the
// result aliases the plan's slices.
func BuildSnapshot(plan domain.Plan) domain.Snapshot {
	blended := BlendedYield(plan.Portfolio.Holdings)
	dividends := MonthlyDividendIncome(plan.Portfolio.TotalValue, blended)

	rentals := SyncRentalIncome(plan.RentalIncome, plan.Houses)
	expenses := SyncMortgageExpenses(plan.Expenses, plan.Houses)

	income := make([]domain.IncomeSource, 0, len(rentals)+len(plan.SavingsIncome)+len(plan.OtherIncome)+2)
	if dividends > 0 {
		income = append(income, domain.IncomeSource{Name: "Dividends", MonthlyAmount: dividends, Kind: domain.IncomeDividend})
	}
	income = append(income, rentals...)
	for _, s := range plan.SavingsIncome {
		s.Kind = domain.IncomeSavings
		income = append(income, s)
	}
	for _, s := range plan.OtherIncome {
		s.Kind = domain.IncomeOther
		income = append(income, s)
	}
	if plan.Personal.AnnualIncome > 0 {
		income = append(income, domain.IncomeSource{Name: "Job", MonthlyAmount: plan.Personal.AnnualIncome / 12, Kind: domain.IncomeJob})
	}

	retirement := RetirementTotal(plan.RetirementAccounts)
	snap := domain.Snapshot{
		Income:                income,
		Expenses:              expenses,
		BlendedYieldPercent:   blended,
		PortfolioValue:        plan.Portfolio.TotalValue,
		MonthlyDividendIncome: dividends,
		RentalIncome:          SumIncome(income, domain.IncomeRental),
		SavingsIncome:         SumIncome(income, domain.IncomeSavings),
		OtherIncome:           SumIncome(income, domain.IncomeOther),
		JobIncome:             SumIncome(income, domain.IncomeJob),
		TotalPassiveIncome:    TotalPassiveIncome(income),
		NonPortfolioIncome:    NonPortfolioIncome(income),
		TotalExpenses:         TotalExpenses(expenses),
		RetirementValue:       retirement,
		HouseValue:            HouseValueTotal(plan.Houses),
		LiquidAssets:          plan.Portfolio.TotalValue + retirement,
	}
	return snap
}

// FIInputsFor derives the projection inputs from a snapshot
func FIInputsFor(snap domain.Snapshot, assumptions domain.Assumptions, currentYear int) domain.FIInputs {
	monthlySavings := snap.TotalMonthlyIncome() - snap.TotalExpenses
	if monthlySavings < 0 {
		monthlySavings = 0
	}
	return domain.FIInputs{
		CurrentLiquidAssets:         snap.LiquidAssets,
		IlliquidAssetValue:          snap.HouseValue,
		MonthlyNonInvestmentSavings: monthlySavings,
		AnnualExpenses:              snap.TotalExpenses * 12,
		SafeWithdrawalRate:          assumptions.SafeWithdrawalRate,
		AssumedAnnualReturn:         assumptions.AssumedAnnualReturn,
		CurrentCalendarYear:         currentYear,
	}
}
