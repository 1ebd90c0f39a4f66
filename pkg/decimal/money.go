package decimal

import (
	"math"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision.
// The calculation engine works in float64; Money is the reporting type.
type Money struct {
	decimal.Decimal
}

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// NewMoney creates a new Money instance from a float64.
// NaN and infinities have no decimal representation and map to zero.
func NewMoney(value float64) Money {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	return Money{decimal.NewFromFloat(value)}
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Float64 returns the closest float64 value.
func (m Money) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// Sum adds up a list of float amounts exactly.
func Sum(values ...float64) Money {
	total := Zero()
	for _, v := range values {
		total = total.Add(NewMoney(v))
	}
	return total
}

// String returns the string representation with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Display formats the amount with thousands separators, e.g. "$705,000.00".
func (m Money) Display() string {
	cents := m.Decimal.Mul(hundred).Round(0).IntPart()
	return gomoney.New(cents, gomoney.USD).Display()
}

// Whole formats the amount rounded to whole dollars, e.g. "$705,000".
func (m Money) Whole() string {
	dollars := m.Decimal.Round(0).IntPart()
	s := gomoney.New(dollars*100, gomoney.USD).Display()
	return s[:len(s)-3]
}

// Percent formats a value already expressed in percent units, e.g. "12.35%".
func Percent(value float64) string {
	return NewMoney(value).Round().String() + "%"
}
