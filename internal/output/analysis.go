package output

import (
	"fmt"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/pkg/decimal"
)

// Recommendation is the next step suggested by a report.
type Recommendation struct {
	GoalName             string
	Progress             float64
	AdditionalInvestment float64
	MonthlyGap           float64
}

// AnalyzeReport picks the next unachieved goal and how far away it is.
// The zero Recommendation means every goal is covered.
func AnalyzeReport(report *domain.PlanReport) Recommendation {
	if report.NextGoal == nil {
		return Recommendation{}
	}
	g := report.NextGoal
	gap := decimal.NewMoney(g.MonthlyIncomeNeeded).Sub(decimal.NewMoney(g.CurrentMonthlyIncome))
	if gap.IsNegative() {
		gap = decimal.Zero()
	}
	return Recommendation{
		GoalName:             g.Name,
		Progress:             report.Summary.NextGoalProgressPercent,
		AdditionalInvestment: g.AdditionalInvestmentNeeded,
		MonthlyGap:           gap.Float64(),
	}
}

// Insights summarizes a report as short sentences for text outputs.
func Insights(report *domain.PlanReport) []string {
	s := report.Summary
	out := []string{
		fmt.Sprintf("Passive income covers %d of %d expense goals", s.GoalsAchieved, s.GoalsTotal),
	}
	if rec := AnalyzeReport(report); rec.GoalName != "" {
		line := fmt.Sprintf("Next goal: %s (%s funded, %s/mo short)", rec.GoalName, FormatPercentage(rec.Progress), FormatWholeCurrency(rec.MonthlyGap))
		if rec.AdditionalInvestment > 0 {
			line += fmt.Sprintf("; invest %s more at the current yield", FormatWholeCurrency(rec.AdditionalInvestment))
		}
		out = append(out, line)
	} else if s.GoalsTotal > 0 {
		out = append(out, "Every expense is covered by passive income")
	}
	if !report.Projection.Reached {
		out = append(out, "Financial independence is not reached within the projection horizon")
	} else {
		out = append(out, fmt.Sprintf("Financial independence projected in %s (%d years)", FormatYear(report.Projection.ProjectedYear), report.Projection.YearsToGo))
	}
	if s.MonthlySavings < 0 {
		out = append(out, fmt.Sprintf("Spending exceeds income by %s/mo", FormatWholeCurrency(-s.MonthlySavings)))
	}
	return out
}
