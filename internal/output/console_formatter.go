package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fiplan/goal-tracker/internal/domain"
)

var (
	purple    = lipgloss.Color("99")
	gray      = lipgloss.Color("245")
	lightGray = lipgloss.Color("241")
	green     = lipgloss.Color("42")

	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffd644"}).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).MarginTop(1)
)

// NewStyledTable returns a table with the report header and zebra row styles.
func NewStyledTable(headers ...string) *table.Table {
	var (
		headerStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}

func goalStatus(g domain.Goal) string {
	if g.Achieved {
		return lipgloss.NewStyle().Foreground(green).Render("achieved")
	}
	return "pending"
}

// GoalsTable renders goals as a terminal table, one row per tier.
func GoalsTable(goals []domain.Goal) string {
	t := NewStyledTable("Tier", "Goal", "Cumulative/mo", "Status", "Portfolio Needed", "Invest More")
	for _, g := range goals {
		t.Row(intToString(g.Tier), g.Name, FormatCurrency(g.CumulativeMonthlyAmount), goalStatus(g),
			FormatCurrency(g.PortfolioValueNeeded), FormatCurrency(g.AdditionalInvestmentNeeded))
	}
	return t.Render()
}

// ConsoleFormatter renders the full dashboard as terminal tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Summary

	name := report.Name
	if name == "" {
		name = "Plan"
	}
	fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("PASSIVE INCOME GOALS: %s", name)))

	fmt.Fprintln(&buf, sectionStyle.Render("Summary"))
	summary := NewStyledTable("Metric", "Value").
		Row("Monthly Income", FormatCurrency(s.TotalMonthlyIncome)).
		Row("Monthly Expenses", FormatCurrency(s.TotalMonthlyExpenses)).
		Row("Monthly Savings", FormatCurrency(s.MonthlySavings)).
		Row("Savings Rate", FormatPercentage(s.SavingsRatePercent)).
		Row("Passive Income", FormatCurrency(report.Snapshot.TotalPassiveIncome)).
		Row("Blended Yield", FormatPercentage(report.Snapshot.BlendedYieldPercent)).
		Row("FIRE Number", FormatCurrency(s.FireNumber)).
		Row("FIRE Progress", FormatPercentage(s.FireProgressPercent)).
		Row("Still Needed", FormatCurrency(s.StillNeeded)).
		Row("FI Year", FormatYear(report.Projection.ProjectedYear)).
		Row("Net Worth", FormatCurrency(report.Projection.CurrentNetWorth))
	fmt.Fprintln(&buf, summary.Render())

	fmt.Fprintln(&buf, sectionStyle.Render("Goals"))
	if len(report.Goals) == 0 {
		fmt.Fprintln(&buf, "No expenses entered.")
	} else {
		fmt.Fprintln(&buf, GoalsTable(report.Goals))
	}

	if len(report.Snapshot.Income) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("Income"))
		income := NewStyledTable("Source", "Kind", "Monthly")
		for _, src := range report.Snapshot.Income {
			income.Row(src.Name, string(src.Kind), FormatCurrency(src.MonthlyAmount))
		}
		fmt.Fprintln(&buf, income.Render())
	}

	fmt.Fprintln(&buf, sectionStyle.Render("Insights"))
	for _, line := range Insights(report) {
		fmt.Fprintf(&buf, "• %s\n", line)
	}

	fmt.Fprintln(&buf, sectionStyle.Render("Assumptions"))
	for _, a := range GenerateAssumptions(report.Inputs) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

// ConsoleLiteFormatter provides a concise plain-text summary.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Summary
	fmt.Fprintln(&buf, "PASSIVE INCOME GOAL SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if report.Name != "" {
		fmt.Fprintf(&buf, "Plan: %s\n", report.Name)
	}
	fmt.Fprintf(&buf, "Income=%s Expenses=%s Savings=%s (%s)\n",
		FormatCurrency(s.TotalMonthlyIncome), FormatCurrency(s.TotalMonthlyExpenses),
		FormatCurrency(s.MonthlySavings), FormatPercentage(s.SavingsRatePercent))
	fmt.Fprintf(&buf, "FIRE=%s Progress=%s FIYear=%s\n",
		FormatCurrency(s.FireNumber), FormatPercentage(s.FireProgressPercent), FormatYear(report.Projection.ProjectedYear))
	fmt.Fprintln(&buf)
	for _, g := range report.Goals {
		mark := " "
		if g.Achieved {
			mark = "x"
		}
		fmt.Fprintf(&buf, "[%s] %d. %s %s/mo\n", mark, g.Tier, g.Name, FormatCurrency(g.CumulativeMonthlyAmount))
	}
	if rec := AnalyzeReport(report); rec.GoalName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Next: %s (%s)\n", rec.GoalName, FormatPercentage(rec.Progress))
	}
	return buf.Bytes(), nil
}
