package domain

import "strings"

// IncomeKind classifies an income source
type IncomeKind string

const (
	IncomeDividend IncomeKind = "dividend"
	IncomeRental   IncomeKind = "rental"
	IncomeSavings  IncomeKind = "savings"
	IncomeOther    IncomeKind = "other"
	IncomeJob      IncomeKind = "job"
)

// IsPassive reports whether income of this kind counts as passive income.
func (k IncomeKind) IsPassive() bool {
	return k != IncomeJob
}

// IncomeSource is a single monthly income stream
type IncomeSource struct {
	Name          string     `yaml:"name" json:"name"`
	MonthlyAmount float64    `yaml:"amount" json:"amount"`
	Kind          IncomeKind `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// ExpenseItem is a single monthly obligation
type ExpenseItem struct {
	Name          string  `yaml:"name" json:"name"`
	MonthlyAmount float64 `yaml:"amount" json:"amount"`
}

// Holding is one ticker in the dividend portfolio
type Holding struct {
	Symbol             string  `yaml:"symbol" json:"symbol"`
	PercentOfPortfolio float64 `yaml:"percent" json:"percent"`
	AnnualYieldPercent float64 `yaml:"yield" json:"yield"` // Resolved through the dividend-yield service when zero
}

// PortfolioState describes the taxable dividend portfolio
type PortfolioState struct {
	Holdings   []Holding `yaml:"holdings" json:"holdings"`
	TotalValue float64   `yaml:"total_value" json:"total_value"`
}

// TotalPercent returns the sum of all holding allocations
func (p PortfolioState) TotalPercent() float64 {
	var total float64
	for _, h := range p.Holdings {
		total += h.PercentOfPortfolio
	}
	return total
}

// RetirementAccount is a tax-advantaged account balance. Counts as liquid.
type RetirementAccount struct {
	Type    string  `yaml:"type" json:"type"`
	Balance float64 `yaml:"balance" json:"balance"`
}

var retirementAccountLabels = map[string]string{
	"401k":            "401(k)",
	"roth-ira":        "Roth IRA",
	"traditional-ira": "Traditional IRA",
	"403b":            "403(b)",
	"sep-ira":         "SEP IRA",
	"simple-ira":      "SIMPLE IRA",
	"pension":         "Pension",
	"other":           "Other Retirement Account",
}

// Label returns the display name of the account type
func (ra RetirementAccount) Label() string {
	if label, ok := retirementAccountLabels[ra.Type]; ok {
		return label
	}
	return "Retirement Account"
}

// IsKnownRetirementAccountType reports whether t is a supported account type
func IsKnownRetirementAccountType(t string) bool {
	_, ok := retirementAccountLabels[t]
	return ok
}

// House is a real-estate holding. It is illiquid: part of net worth but never
// part of the FIRE comparison.
type House struct {
	Type                string  `yaml:"type" json:"type"` // e.g. primary, rental, vacation, multi-family
	Name                string  `yaml:"name" json:"name"`
	PaidOff             bool    `yaml:"paid_off" json:"paid_off"`
	EstimatedValue      float64 `yaml:"estimated_value,omitempty" json:"estimated_value,omitempty"`
	Equity              float64 `yaml:"equity,omitempty" json:"equity,omitempty"`
	MortgagePayment     float64 `yaml:"mortgage_payment,omitempty" json:"mortgage_payment,omitempty"`
	GeneratesRental     bool    `yaml:"generates_rental,omitempty" json:"generates_rental,omitempty"`
	MonthlyRentalIncome float64 `yaml:"monthly_rental_income,omitempty" json:"monthly_rental_income,omitempty"`
}

// Value is the estimate for a paid-off house and the equity otherwise.
func (h House) Value() float64 {
	if h.PaidOff {
		return h.EstimatedValue
	}
	return h.Equity
}

// MortgageExpenseName is the name of the expense derived from a mortgaged house
func (h House) MortgageExpenseName() string {
	return h.Name + " Mortgage"
}

// PersonalInfo holds the first builder step
type PersonalInfo struct {
	Career             string  `yaml:"career" json:"career"`
	City               string  `yaml:"city" json:"city"`
	RelationshipStatus string  `yaml:"relationship_status" json:"relationship_status"` // single|married|partnered
	NumberOfKids       int     `yaml:"number_of_kids" json:"number_of_kids"`
	AnnualIncome       float64 `yaml:"annual_income" json:"annual_income"`
}

// Assumptions are the projection parameters. A zero withdrawal rate or an
// absent return falls back to the defaults; annual_return: 0 means 0%.
type Assumptions struct {
	SafeWithdrawalRate  float64  `yaml:"safe_withdrawal_rate,omitempty" json:"safe_withdrawal_rate,omitempty"`
	AssumedAnnualReturn *float64 `yaml:"annual_return,omitempty" json:"annual_return,omitempty"`
}

// Rate returns a pointer to v for the optional rate fields.
func Rate(v float64) *float64 { return &v }

// Plan is the complete state collected by the builder. It is passed by value
// into the engine, which never keeps a reference to it.
type Plan struct {
	Name               string              `yaml:"name,omitempty" json:"name,omitempty"`
	Personal           PersonalInfo        `yaml:"personal" json:"personal"`
	Portfolio          PortfolioState      `yaml:"portfolio" json:"portfolio"`
	RentalIncome       []IncomeSource      `yaml:"rental_income,omitempty" json:"rental_income,omitempty"`
	OtherIncome        []IncomeSource      `yaml:"other_income,omitempty" json:"other_income,omitempty"`
	SavingsIncome      []IncomeSource      `yaml:"savings_income,omitempty" json:"savings_income,omitempty"`
	RetirementAccounts []RetirementAccount `yaml:"retirement_accounts,omitempty" json:"retirement_accounts,omitempty"`
	Houses             []House             `yaml:"houses,omitempty" json:"houses,omitempty"`
	Expenses           []ExpenseItem       `yaml:"expenses" json:"expenses"`
	Assumptions        Assumptions         `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
}

// Symbols returns the upper-cased ticker symbols of the portfolio
func (p *Plan) Symbols() []string {
	symbols := make([]string, 0, len(p.Portfolio.Holdings))
	for _, h := range p.Portfolio.Holdings {
		symbols = append(symbols, strings.ToUpper(strings.TrimSpace(h.Symbol)))
	}
	return symbols
}
