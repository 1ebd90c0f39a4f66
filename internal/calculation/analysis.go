package calculation

import (
	"fmt"
	"sort"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// compare fills the comparison verdicts from the evaluated reports
func (ce *CalculationEngine) compare(c *domain.PlanComparison) {
	var earliest domain.FIYear
	var mostGoals int
	var bestSavings float64
	first := true

	for _, r := range c.Reports {
		year := r.Projection.ProjectedYear
		if !year.IsNever() && (earliest.IsNever() || year < earliest) {
			earliest = year
			c.EarliestFIPlan = r.Name
		}
		if r.Summary.GoalsAchieved > mostGoals {
			mostGoals = r.Summary.GoalsAchieved
			c.MostGoalsPlan = r.Name
		}
		if first || r.Summary.SavingsRatePercent > bestSavings {
			bestSavings = r.Summary.SavingsRatePercent
			c.HighestSavings = r.Name
			first = false
		}
	}

	c.KeyConsiderations = considerations(c)
}

func considerations(c *domain.PlanComparison) []string {
	var notes []string
	if c.EarliestFIPlan == "" && len(c.Reports) > 0 {
		notes = append(notes, "No plan reaches financial independence within 50 years; raise savings or cut expenses")
	}
	for _, r := range c.Reports {
		if r.Summary.MonthlySavings <= 0 {
			notes = append(notes, fmt.Sprintf("%s spends more than it earns", r.Name))
		}
		if r.Snapshot.BlendedYieldPercent == 0 && r.Snapshot.PortfolioValue > 0 {
			notes = append(notes, fmt.Sprintf("%s has no dividend yield data; portfolio targets are unavailable", r.Name))
		}
	}
	if len(notes) == 0 {
		notes = append(notes, "Review assumptions for withdrawal rate and market return")
	}
	return notes
}

func sortedKeys(plans map[string]domain.Plan) []string {
	names := make([]string, 0, len(plans))
	for name := range plans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
