package output

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// CSVGoalsFormatter implements the goals CSV output (one row per tier).
type CSVGoalsFormatter struct{}

func (c CSVGoalsFormatter) Name() string { return "csv" }

func (c CSVGoalsFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Tier", "Name", "CumulativeMonthlyAmount", "Achieved", "PortfolioValueNeeded", "AdditionalInvestmentNeeded", "MonthlyIncomeNeeded", "CurrentMonthlyIncome", "Expenses"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, g := range report.Goals {
		row := []string{
			intToString(g.Tier),
			g.Name,
			amount(g.CumulativeMonthlyAmount),
			boolToString(g.Achieved),
			amount(g.PortfolioValueNeeded),
			amount(g.AdditionalInvestmentNeeded),
			amount(g.MonthlyIncomeNeeded),
			amount(g.CurrentMonthlyIncome),
			strings.Join(g.ConstituentExpenseNames, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
