package output

import (
	"strconv"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/pkg/decimal"
)

// FormatCurrency formats an amount as USD with thousands separators and 2 decimals.
func FormatCurrency(amount float64) string { return decimal.NewMoney(amount).Display() }

// FormatWholeCurrency formats an amount as whole US dollars.
func FormatWholeCurrency(amount float64) string { return decimal.NewMoney(amount).Whole() }

// FormatPercentage formats a percent value with 2 decimals.
func FormatPercentage(percent float64) string { return decimal.Percent(percent) }

// FormatYear renders a projected FI year, or "Never".
func FormatYear(y domain.FIYear) string { return y.String() }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func amount(v float64) string { return decimal.NewMoney(v).Round().String() }
