package advisor

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// IncomeBreakdown is the monthly income mix used for the income tip
type IncomeBreakdown struct {
	Job    float64
	Stocks float64
	Rental float64
	Other  float64
}

// BreakdownFor derives the income mix from a snapshot. Savings interest is
// reported with other income.
func BreakdownFor(snap domain.Snapshot) IncomeBreakdown {
	return IncomeBreakdown{
		Job:    snap.JobIncome,
		Stocks: snap.MonthlyDividendIncome,
		Rental: snap.RentalIncome,
		Other:  snap.OtherIncome + snap.SavingsIncome,
	}
}

// Total is the sum of all sources
func (b IncomeBreakdown) Total() float64 {
	return b.Job + b.Stocks + b.Rental + b.Other
}

// Concentration is the largest source's share of the total, in percent
func (b IncomeBreakdown) Concentration() float64 {
	total := b.Total()
	if total <= 0 {
		return 0
	}
	largest := math.Max(math.Max(b.Job, b.Stocks), math.Max(b.Rental, b.Other))
	return largest / total * 100
}

func whole(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IncomeTipPrompt builds the message asking for one passive-income tip
func IncomeTipPrompt(b IncomeBreakdown) string {
	return fmt.Sprintf("Income breakdown: Job $%s/mo, Stocks $%s/mo, Rental $%s/mo, Other $%s/mo (%s%% from largest source). "+
		"Using proven strategies from financial experts (Warren Buffett, Ramit Sethi, etc.), give ONE ultra-specific tip to boost passive income. "+
		"STRICT RULES: Max 15 words. Use SUGGESTIVE language (\"Consider\", \"Try\", \"You could\"). Use **bold** for key action. Include a number. "+
		"Example: \"Consider **investing $500/mo** in dividend aristocrats for 4%% yield.\" No preamble, no fluff.",
		whole(b.Job), whole(b.Stocks), whole(b.Rental), whole(b.Other), whole(b.Concentration()))
}

// ExpenseTipPrompt builds the message asking for one cost-cutting tip. It
// returns false when there is no positive expense to talk about.
func ExpenseTipPrompt(expenses []domain.ExpenseItem) (string, bool) {
	var positive []domain.ExpenseItem
	var total float64
	parts := make([]string, 0, len(expenses))
	for _, e := range expenses {
		parts = append(parts, fmt.Sprintf("%s: $%s", e.Name, plain(e.MonthlyAmount)))
		total += e.MonthlyAmount
		if e.MonthlyAmount > 0 {
			positive = append(positive, e)
		}
	}
	if len(positive) == 0 {
		return "", false
	}

	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].MonthlyAmount > positive[j].MonthlyAmount
	})
	largest := positive[0]

	return fmt.Sprintf("Expenses: %s (%s is %s%% of total). "+
		"Using proven frugal living strategies from finance experts, give ONE ultra-specific cost-cutting tip. "+
		"STRICT RULES: Max 15 words. Use SUGGESTIVE language (\"Consider\", \"Try\", \"You could\"). Use **bold** for key action. Include a number or %%. "+
		"Example: \"Consider **negotiating rent down 10%%** to save $300/mo.\" No preamble, no fluff.",
		strings.Join(parts, ", "), largest.Name, whole(largest.MonthlyAmount/total*100)), true
}
