package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestReport() *domain.PlanReport {
	goals := []domain.Goal{
		{Tier: 1, Name: "Rent", CumulativeMonthlyAmount: 1000, ConstituentExpenseNames: []string{"Rent"}, Achieved: true,
			MonthlyIncomeNeeded: 1000, CurrentMonthlyIncome: 1000},
		{Tier: 2, Name: "Food", CumulativeMonthlyAmount: 1500, ConstituentExpenseNames: []string{"Rent", "Food"},
			PortfolioValueNeeded: 600000, AdditionalInvestmentNeeded: 200000, MonthlyIncomeNeeded: 1500, CurrentMonthlyIncome: 1000},
	}
	next := goals[1]
	return &domain.PlanReport{
		Name: "sample",
		Snapshot: domain.Snapshot{
			Income: []domain.IncomeSource{
				{Name: "Dividends", MonthlyAmount: 1000, Kind: domain.IncomeDividend},
				{Name: "Job", MonthlyAmount: 4000, Kind: domain.IncomeJob},
			},
			Expenses:            []domain.ExpenseItem{{Name: "Rent", MonthlyAmount: 1000}, {Name: "Food", MonthlyAmount: 500}},
			BlendedYieldPercent: 3,
			TotalPassiveIncome:  1000,
			JobIncome:           4000,
			TotalExpenses:       1500,
			LiquidAssets:        150000,
		},
		Goals:    goals,
		NextGoal: &next,
		Inputs: domain.FIInputs{
			SafeWithdrawalRate:          0.04,
			AssumedAnnualReturn:         domain.Rate(0.05),
			MonthlyNonInvestmentSavings: 3500,
			MaxYears:                    50,
			MaxMonths:                   600,
		},
		Projection: domain.FIProjection{Reached: true, ProjectedYear: 2029, YearsToGo: 4, FireNumber: 450000, CurrentNetWorth: 480000},
		Summary: domain.Summary{
			TotalMonthlyIncome:      5000,
			TotalMonthlyExpenses:    1500,
			MonthlySavings:          3500,
			SavingsRatePercent:      70,
			FireNumber:              450000,
			FireProgressPercent:     33.33,
			StillNeeded:             300000,
			GoalsAchieved:           1,
			GoalsTotal:              2,
			NextGoalProgressPercent: 66.67,
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"console", "console"},
		{" TABLE ", "console"},
		{"lite", "console-lite"},
		{"csv", "csv"},
		{"csv-detailed", "detailed-csv"},
		{"json-pretty", "json"},
		{"yml", "yaml"},
		{"md", "markdown"},
		{"html", "html"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.in)
		require.NotNil(t, f, tt.in)
		assert.Equal(t, tt.want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableNamesSorted(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json", "markdown", "yaml"}, names)
	assert.Contains(t, AvailableFormatAliases(), "yml")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "txt", Extension("console"))
	assert.Equal(t, "txt", Extension("lite"))
	assert.Equal(t, "csv", Extension("detailed-csv"))
	assert.Equal(t, "md", Extension("markdown"))
	assert.Equal(t, "yaml", Extension("yml"))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "PASSIVE INCOME GOALS: sample")
	assert.Contains(t, content, "$450,000.00")
	assert.Contains(t, content, "achieved")
	assert.Contains(t, content, "Dividends")
	assert.Contains(t, content, "Next goal: Food (66.67% funded, $500/mo short); invest $200,000 more at the current yield")
	assert.Contains(t, content, "Safe withdrawal rate: 4.0% of liquid assets per year")
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "PASSIVE INCOME GOAL SUMMARY\n"))
	assert.Contains(t, content, "[x] 1. Rent $1,000.00/mo")
	assert.Contains(t, content, "[ ] 2. Food $1,500.00/mo")
	assert.Contains(t, content, "FIYear=2029")
	assert.Contains(t, content, "Next: Food (66.67%)")
}

func TestCSVGoalsFormatter(t *testing.T) {
	out, err := CSVGoalsFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Tier,Name,"))
	assert.Equal(t, "1,Rent,1000.00,true,0.00,0.00,1000.00,1000.00,Rent", lines[1])
	assert.Equal(t, "2,Food,1500.00,false,600000.00,200000.00,1500.00,1000.00,Rent; Food", lines[2])
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "income,Job,job,4000.00,48000.00", lines[2])
	assert.Equal(t, "total,Income,,5000.00,60000.00", lines[3])
	assert.Equal(t, "expense,Food,,500.00,6000.00", lines[5])
	assert.Equal(t, "total,Expenses,,1500.00,18000.00", lines[6])

	// Totals are summed exactly before rounding
	report := buildTestReport()
	report.Snapshot.Expenses = []domain.ExpenseItem{{Name: "A", MonthlyAmount: 0.1}, {Name: "B", MonthlyAmount: 0.2}, {Name: "C", MonthlyAmount: 0.005}}
	out, err = CSVDetailedExporter{}.Format(report)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Equal(t, "total,Expenses,,0.31,3.66", lines[len(lines)-1])
}

func TestJSONAndYAMLFormatters(t *testing.T) {
	report := buildTestReport()

	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)
	var decoded domain.PlanReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, domain.FIYear(2029), decoded.Projection.ProjectedYear)
	assert.Len(t, decoded.Goals, 2)

	report.Projection.ProjectedYear = domain.Never
	out, err = YAMLFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "projected_year: Never")
	var fromYAML domain.PlanReport
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.True(t, fromYAML.Projection.ProjectedYear.IsNever())
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := MarkdownFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "# Passive Income Goals: sample\n"))
	assert.Contains(t, content, "- [x] **Rent**: $1,000.00/mo")
	assert.Contains(t, content, "- [ ] **Food**: $1,500.00/mo, invest $200,000 more")
	assert.Contains(t, content, "| FI year | 2029 |")

	rendered, err := RenderMarkdown(content, "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, rendered, "Passive Income Goals: sample")
}

func TestHTMLFormatter(t *testing.T) {
	report := buildTestReport()
	report.Goals[0].Name = "<Rent>"
	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<title>Passive Income Goals: sample</title>")
	assert.Contains(t, content, "&lt;Rent&gt;")
	assert.Contains(t, content, `<span class="achieved">achieved</span>`)
	assert.Contains(t, content, "$450,000.00")
}

func TestInsights(t *testing.T) {
	report := buildTestReport()
	assert.Equal(t, []string{
		"Passive income covers 1 of 2 expense goals",
		"Next goal: Food (66.67% funded, $500/mo short); invest $200,000 more at the current yield",
		"Financial independence projected in 2029 (4 years)",
	}, Insights(report))

	report.NextGoal = nil
	report.Summary.GoalsAchieved = 2
	report.Summary.MonthlySavings = -250
	report.Projection.Reached = false
	report.Projection.ProjectedYear = domain.Never
	assert.Equal(t, []string{
		"Passive income covers 2 of 2 expense goals",
		"Every expense is covered by passive income",
		"Financial independence is not reached within the projection horizon",
		"Spending exceeds income by $250/mo",
	}, Insights(report))
	assert.Equal(t, Recommendation{}, AnalyzeReport(report))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1,234.57", FormatCurrency(1234.567))
	assert.Equal(t, "$1,235", FormatWholeCurrency(1234.567))
	assert.Equal(t, "12.35%", FormatPercentage(12.3456))
	assert.Equal(t, "Never", FormatYear(domain.Never))
	assert.Equal(t, "42", intToString(42))
	assert.Equal(t, "false", boolToString(false))
}

func TestFormatComparison(t *testing.T) {
	a := *buildTestReport()
	b := *buildTestReport()
	b.Name = "lean"
	b.Projection.ProjectedYear = domain.Never
	out := FormatComparison(&domain.PlanComparison{
		Reports:           []domain.PlanReport{a, b},
		EarliestFIPlan:    "sample",
		MostGoalsPlan:     "sample",
		HighestSavings:    "lean",
		KeyConsiderations: []string{"lean spends more than it earns"},
	})
	assert.Contains(t, out, "PLAN COMPARISON")
	assert.Contains(t, out, "Never")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "Earliest FI: sample")
	assert.Contains(t, out, "Highest savings rate: lean")
	assert.Contains(t, out, "• lean spends more than it earns")
}

func TestWriteFormatted(t *testing.T) {
	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = prev })

	dir := t.TempDir()
	path, err := WriteFormatted(JSONFormatter{}, buildTestReport(), dir, "json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fiplan_json_20250102_030405.json"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "sample"`)
}
