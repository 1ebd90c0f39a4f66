package calculation

import (
	"math"
	"sort"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// ComputeGoals converts expenses into ordered cumulative coverage tiers.
//
// Expenses are tiered cheapest first; ties keep their input order. Each tier
// covers every expense up to and including its own. The caller's slice is not
// modified and the result is freshly allocated on every call.
func ComputeGoals(expenses []domain.ExpenseItem, totalPassiveMonthlyIncome, nonPortfolioMonthlyIncome, blendedYieldPercent, currentPortfolioValue float64) []domain.Goal {
	sorted := make([]domain.ExpenseItem, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MonthlyAmount < sorted[j].MonthlyAmount
	})

	goals := make([]domain.Goal, 0, len(sorted))
	var cumulative float64
	for i, expense := range sorted {
		cumulative += expense.MonthlyAmount

		names := make([]string, i+1)
		for j := 0; j <= i; j++ {
			names[j] = sorted[j].Name
		}

		// Annualized comparison keeps parity with the reference figures
		achieved := totalPassiveMonthlyIncome*12 >= cumulative*12

		needFromPortfolio := math.Max(0, cumulative-nonPortfolioMonthlyIncome)
		var valueNeeded float64
		if blendedYieldPercent > 0 {
			valueNeeded = needFromPortfolio * 12 / (blendedYieldPercent / 100)
		}
		additional := math.Max(0, valueNeeded-currentPortfolioValue)

		goals = append(goals, domain.Goal{
			Tier:                       i + 1,
			Name:                       expense.Name,
			CumulativeMonthlyAmount:    cumulative,
			ConstituentExpenseNames:    names,
			Achieved:                   achieved,
			PortfolioValueNeeded:       valueNeeded,
			AdditionalInvestmentNeeded: additional,
			MonthlyIncomeNeeded:        cumulative,
			CurrentMonthlyIncome:       totalPassiveMonthlyIncome,
		})
	}
	return goals
}

// ComputeGoalsFor runs ComputeGoals over a bundled argument set.
func ComputeGoalsFor(in domain.GoalInputs) []domain.Goal {
	return ComputeGoals(in.Expenses, in.TotalPassiveMonthlyIncome, in.NonPortfolioMonthlyIncome, in.BlendedYieldPercent, in.CurrentPortfolioValue)
}

// NextGoal returns the first unachieved tier, or the last tier when every
// tier is achieved. It returns nil for an empty list.
func NextGoal(goals []domain.Goal) *domain.Goal {
	if len(goals) == 0 {
		return nil
	}
	for i := range goals {
		if !goals[i].Achieved {
			g := goals[i]
			return &g
		}
	}
	g := goals[len(goals)-1]
	return &g
}

// GoalProgress is passive income as a percentage of the tier's cumulative
// amount, capped at 100.
func GoalProgress(g domain.Goal) float64 {
	if g.CumulativeMonthlyAmount <= 0 {
		return 100
	}
	return math.Min(100, g.CurrentMonthlyIncome/g.CumulativeMonthlyAmount*100)
}

// AchievedCount counts the achieved tiers
func AchievedCount(goals []domain.Goal) int {
	n := 0
	for _, g := range goals {
		if g.Achieved {
			n++
		}
	}
	return n
}
