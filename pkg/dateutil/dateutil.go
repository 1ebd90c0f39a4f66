package dateutil

import (
	"time"
)

// DayLayout is the layout of DayKey
const DayLayout = "2006-01-02"

// DayKey returns the calendar day of a date, e.g. "2025-03-01"
func DayKey(date time.Time) string {
	return date.Format(DayLayout)
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// BeginningOfMonth returns the first day of the month for a given date
func BeginningOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthAfter returns the first day of the month that starts months after
// the month containing start. A projection that reaches its target after
// n simulated months reaches it in MonthAfter(start, n).
func MonthAfter(start time.Time, months int) time.Time {
	return AddMonths(BeginningOfMonth(start), months)
}
