package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/pkg/decimal"
)

// CSVDetailedExporter lists every income and expense line of a report,
// each section followed by its exact total.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Name", "Kind", "MonthlyAmount", "AnnualAmount"}); err != nil {
		return nil, err
	}

	income := make([]float64, 0, len(report.Snapshot.Income))
	for _, src := range report.Snapshot.Income {
		if err := w.Write(lineRow("income", src.Name, string(src.Kind), decimal.NewMoney(src.MonthlyAmount))); err != nil {
			return nil, err
		}
		income = append(income, src.MonthlyAmount)
	}
	if err := w.Write(lineRow("total", "Income", "", decimal.Sum(income...))); err != nil {
		return nil, err
	}

	expenses := make([]float64, 0, len(report.Snapshot.Expenses))
	for _, e := range report.Snapshot.Expenses {
		if err := w.Write(lineRow("expense", e.Name, "", decimal.NewMoney(e.MonthlyAmount))); err != nil {
			return nil, err
		}
		expenses = append(expenses, e.MonthlyAmount)
	}
	if err := w.Write(lineRow("total", "Expenses", "", decimal.Sum(expenses...))); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func lineRow(section, name, kind string, monthly decimal.Money) []string {
	return []string{section, name, kind, monthly.Round().String(), monthly.Annual().Round().String()}
}
