package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// HTMLFormatter produces a standalone HTML dashboard.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"year": FormatYear,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.PlanReport
		Insights    []string
		Assumptions []string
	}{report, Insights(report), GenerateAssumptions(report.Inputs)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
