package output

import (
	"bytes"
	"fmt"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// FormatComparison renders several evaluated plans side by side.
func FormatComparison(c *domain.PlanComparison) string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, titleStyle.Render("PLAN COMPARISON"))

	t := NewStyledTable("Plan", "Income/mo", "Expenses/mo", "Savings Rate", "Goals", "FIRE Progress", "FI Year")
	for _, r := range c.Reports {
		s := r.Summary
		t.Row(r.Name,
			FormatCurrency(s.TotalMonthlyIncome),
			FormatCurrency(s.TotalMonthlyExpenses),
			FormatPercentage(s.SavingsRatePercent),
			fmt.Sprintf("%d/%d", s.GoalsAchieved, s.GoalsTotal),
			FormatPercentage(s.FireProgressPercent),
			FormatYear(r.Projection.ProjectedYear))
	}
	fmt.Fprintln(&buf, t.Render())

	if c.EarliestFIPlan != "" {
		fmt.Fprintf(&buf, "Earliest FI: %s\n", c.EarliestFIPlan)
	}
	if c.MostGoalsPlan != "" {
		fmt.Fprintf(&buf, "Most goals covered: %s\n", c.MostGoalsPlan)
	}
	if c.HighestSavings != "" {
		fmt.Fprintf(&buf, "Highest savings rate: %s\n", c.HighestSavings)
	}
	if len(c.KeyConsiderations) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("Key considerations"))
		for _, k := range c.KeyConsiderations {
			fmt.Fprintf(&buf, "• %s\n", k)
		}
	}
	return buf.String()
}
