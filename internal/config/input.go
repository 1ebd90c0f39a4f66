package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fiplan/goal-tracker/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing and validation of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Parse decodes and validates plan data. JSON is accepted as a YAML subset.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan checks the plan the way the builder forms do and returns the
// first failure with its field path.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if err := ip.validatePersonal(&plan.Personal); err != nil {
		return fmt.Errorf("personal: %w", err)
	}
	if err := ip.validatePortfolio(&plan.Portfolio); err != nil {
		return err
	}

	incomeLists := []struct {
		field   string
		sources []domain.IncomeSource
	}{
		{"rental_income", plan.RentalIncome},
		{"savings_income", plan.SavingsIncome},
		{"other_income", plan.OtherIncome},
	}
	for _, list := range incomeLists {
		for i, s := range list.sources {
			if err := ip.validateIncome(&s); err != nil {
				return fmt.Errorf("%s[%d]: %w", list.field, i, err)
			}
		}
	}

	for i, acct := range plan.RetirementAccounts {
		if !domain.IsKnownRetirementAccountType(acct.Type) {
			return fmt.Errorf("retirement_accounts[%d]: unknown account type %q", i, acct.Type)
		}
		if err := nonNegative("balance", acct.Balance); err != nil {
			return fmt.Errorf("retirement_accounts[%d]: %w", i, err)
		}
	}

	seen := make(map[string]bool, len(plan.Houses))
	for i, h := range plan.Houses {
		if err := ip.validateHouse(&h); err != nil {
			return fmt.Errorf("houses[%d]: %w", i, err)
		}
		if seen[h.Name] {
			return fmt.Errorf("houses[%d]: duplicate house name %q", i, h.Name)
		}
		seen[h.Name] = true
	}

	for i, e := range plan.Expenses {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("expenses[%d]: name is required", i)
		}
		if !isFinite(e.MonthlyAmount) || e.MonthlyAmount <= 0 {
			return fmt.Errorf("expenses[%d]: amount must be positive", i)
		}
	}

	if err := ip.validateAssumptions(&plan.Assumptions); err != nil {
		return fmt.Errorf("assumptions: %w", err)
	}

	return nil
}

func (ip *InputParser) validatePersonal(p *domain.PersonalInfo) error {
	if err := nonNegative("annual_income", p.AnnualIncome); err != nil {
		return err
	}
	if p.NumberOfKids < 0 {
		return fmt.Errorf("number_of_kids cannot be negative")
	}
	switch p.RelationshipStatus {
	case "", "single", "married", "partnered":
	default:
		return fmt.Errorf("relationship_status must be single, married or partnered, got %q", p.RelationshipStatus)
	}
	return nil
}

func (ip *InputParser) validatePortfolio(p *domain.PortfolioState) error {
	if err := nonNegative("total_value", p.TotalValue); err != nil {
		return fmt.Errorf("portfolio: %w", err)
	}
	for i, h := range p.Holdings {
		if strings.TrimSpace(h.Symbol) == "" {
			return fmt.Errorf("portfolio.holdings[%d]: symbol is required", i)
		}
		if !isFinite(h.PercentOfPortfolio) || h.PercentOfPortfolio <= 0 || h.PercentOfPortfolio > 100 {
			return fmt.Errorf("portfolio.holdings[%d]: percent must be between 0 and 100", i)
		}
		if err := nonNegative("yield", h.AnnualYieldPercent); err != nil {
			return fmt.Errorf("portfolio.holdings[%d]: %w", i, err)
		}
	}
	if total := p.TotalPercent(); total > 100 {
		return fmt.Errorf("portfolio.holdings: allocations total %.2f%%, cannot exceed 100%%", total)
	}
	return nil
}

func (ip *InputParser) validateIncome(s *domain.IncomeSource) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nonNegative("amount", s.MonthlyAmount)
}

func (ip *InputParser) validateHouse(h *domain.House) error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("name is required")
	}
	values := []struct {
		field string
		value float64
	}{
		{"estimated_value", h.EstimatedValue},
		{"equity", h.Equity},
		{"mortgage_payment", h.MortgagePayment},
		{"monthly_rental_income", h.MonthlyRentalIncome},
	}
	for _, v := range values {
		if err := nonNegative(v.field, v.value); err != nil {
			return err
		}
	}
	if h.GeneratesRental && h.MonthlyRentalIncome <= 0 {
		return fmt.Errorf("monthly_rental_income must be positive for a rental-generating house")
	}
	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	if !isFinite(a.SafeWithdrawalRate) || a.SafeWithdrawalRate < 0 || a.SafeWithdrawalRate > 0.20 {
		return fmt.Errorf("safe_withdrawal_rate must be between 0 and 0.20")
	}
	if r := a.AssumedAnnualReturn; r != nil && (!isFinite(*r) || *r < -0.50 || *r > 0.50) {
		return fmt.Errorf("annual_return must be between -0.50 and 0.50")
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if !isFinite(v) {
		return fmt.Errorf("%s must be a finite number", field)
	}
	if v < 0 {
		return fmt.Errorf("%s cannot be negative", field)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SavePlanFile writes a plan as YAML
func (ip *InputParser) SavePlanFile(plan *domain.Plan, filename string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExamplePlan creates an example plan for documentation
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	return &domain.Plan{
		Name: "example",
		Personal: domain.PersonalInfo{
			Career:             "Software Engineer",
			City:               "Raleigh",
			RelationshipStatus: "married",
			NumberOfKids:       1,
			AnnualIncome:       95000,
		},
		Portfolio: domain.PortfolioState{
			TotalValue: 85000,
			Holdings: []domain.Holding{
				{Symbol: "SCHD", PercentOfPortfolio: 50, AnnualYieldPercent: 3.25},
				{Symbol: "VYM", PercentOfPortfolio: 30, AnnualYieldPercent: 2.95},
				{Symbol: "JNJ", PercentOfPortfolio: 20, AnnualYieldPercent: 2.65},
			},
		},
		SavingsIncome: []domain.IncomeSource{
			{Name: "High-yield savings", MonthlyAmount: 45},
		},
		OtherIncome: []domain.IncomeSource{
			{Name: "Freelance design", MonthlyAmount: 400},
		},
		RetirementAccounts: []domain.RetirementAccount{
			{Type: "401k", Balance: 120000},
			{Type: "roth-ira", Balance: 35000},
		},
		Houses: []domain.House{
			{Type: "primary", Name: "Home", Equity: 90000, MortgagePayment: 1650},
			{Type: "rental", Name: "Maple St Duplex", PaidOff: true, EstimatedValue: 210000, GeneratesRental: true, MonthlyRentalIncome: 1400},
		},
		Expenses: []domain.ExpenseItem{
			{Name: "Groceries", MonthlyAmount: 650},
			{Name: "Utilities", MonthlyAmount: 220},
			{Name: "Car Payment", MonthlyAmount: 380},
			{Name: "Phone", MonthlyAmount: 85},
			{Name: "Insurance", MonthlyAmount: 310},
			{Name: "Streaming", MonthlyAmount: 35},
		},
		Assumptions: domain.Assumptions{
			SafeWithdrawalRate:  0.04,
			AssumedAnnualReturn: domain.Rate(0.05),
		},
	}
}
