package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fiplan/goal-tracker/internal/domain"
)

// MarkdownFormatter renders the report as GitHub-flavored markdown.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Summary
	title := "Passive Income Goals"
	if report.Name != "" {
		title += ": " + report.Name
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)

	fmt.Fprintln(&buf, "| Metric | Value |")
	fmt.Fprintln(&buf, "| --- | --- |")
	fmt.Fprintf(&buf, "| Monthly income | %s |\n", FormatCurrency(s.TotalMonthlyIncome))
	fmt.Fprintf(&buf, "| Monthly expenses | %s |\n", FormatCurrency(s.TotalMonthlyExpenses))
	fmt.Fprintf(&buf, "| Savings rate | %s |\n", FormatPercentage(s.SavingsRatePercent))
	fmt.Fprintf(&buf, "| FIRE number | %s |\n", FormatCurrency(s.FireNumber))
	fmt.Fprintf(&buf, "| FIRE progress | %s |\n", FormatPercentage(s.FireProgressPercent))
	fmt.Fprintf(&buf, "| FI year | %s |\n\n", FormatYear(report.Projection.ProjectedYear))

	if len(report.Goals) > 0 {
		fmt.Fprintln(&buf, "## Goals")
		fmt.Fprintln(&buf)
		for _, g := range report.Goals {
			check := " "
			if g.Achieved {
				check = "x"
			}
			fmt.Fprintf(&buf, "- [%s] **%s**: %s/mo", check, escapeMarkdown(g.Name), FormatCurrency(g.CumulativeMonthlyAmount))
			if !g.Achieved && g.AdditionalInvestmentNeeded > 0 {
				fmt.Fprintf(&buf, ", invest %s more", FormatWholeCurrency(g.AdditionalInvestmentNeeded))
			}
			fmt.Fprintln(&buf)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "## Insights")
	fmt.Fprintln(&buf)
	for _, line := range Insights(report) {
		fmt.Fprintf(&buf, "- %s\n", escapeMarkdown(line))
	}
	return buf.Bytes(), nil
}

var markdownEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "|", `\|`)

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }

// RenderMarkdown renders markdown for a terminal. style is a glamour style
// name such as "dark", "light" or "notty"; width <= 0 disables wrapping.
func RenderMarkdown(md, style string, width int) (string, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
