package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Goal is one cumulative expense-coverage tier
type Goal struct {
	Tier                       int      `json:"tier" yaml:"tier"`
	Name                       string   `json:"name" yaml:"name"`
	CumulativeMonthlyAmount    float64  `json:"cumulative_monthly_amount" yaml:"cumulative_monthly_amount"`
	ConstituentExpenseNames    []string `json:"constituent_expense_names" yaml:"constituent_expense_names"`
	Achieved                   bool     `json:"achieved" yaml:"achieved"`
	PortfolioValueNeeded       float64  `json:"portfolio_value_needed" yaml:"portfolio_value_needed"`
	AdditionalInvestmentNeeded float64  `json:"additional_investment_needed" yaml:"additional_investment_needed"`
	MonthlyIncomeNeeded        float64  `json:"monthly_income_needed" yaml:"monthly_income_needed"`
	CurrentMonthlyIncome       float64  `json:"current_monthly_income" yaml:"current_monthly_income"`
}

// FIYear is a projected calendar year. The zero value means FI is never
// reached within the simulation horizon, so projections must start from a
// positive calendar year.
type FIYear int

// Never is the FIYear reported when the target is out of reach
const Never FIYear = 0

const neverText = "Never"

// IsNever reports whether the projection never reaches FI
func (y FIYear) IsNever() bool { return y == Never }

func (y FIYear) String() string {
	if y.IsNever() {
		return neverText
	}
	return strconv.Itoa(int(y))
}

// MarshalJSON renders the year as a number, or the string "Never".
func (y FIYear) MarshalJSON() ([]byte, error) {
	if y.IsNever() {
		return json.Marshal(neverText)
	}
	return json.Marshal(int(y))
}

// UnmarshalJSON accepts a number or the string "Never".
func (y *FIYear) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = FIYear(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid FI year %s: %w", data, err)
	}
	return y.parse(s)
}

// MarshalYAML renders the year as a number, or the string "Never".
func (y FIYear) MarshalYAML() (interface{}, error) {
	if y.IsNever() {
		return neverText, nil
	}
	return int(y), nil
}

// UnmarshalYAML accepts a number or the string "Never".
func (y *FIYear) UnmarshalYAML(value *yaml.Node) error {
	return y.parse(value.Value)
}

func (y *FIYear) parse(s string) error {
	if s == neverText {
		*y = Never
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid FI year %q: %w", s, err)
	}
	*y = FIYear(n)
	return nil
}

// FIInputs are the aggregate totals the FI simulator needs. Zero-valued
// withdrawal rates and limits take the documented defaults. The return is a
// pointer so that an explicit 0% stays distinct from "not given".
type FIInputs struct {
	CurrentLiquidAssets         float64  `json:"current_liquid_assets" yaml:"current_liquid_assets"`
	IlliquidAssetValue          float64  `json:"illiquid_asset_value" yaml:"illiquid_asset_value"`
	MonthlyNonInvestmentSavings float64  `json:"monthly_non_investment_savings" yaml:"monthly_non_investment_savings"`
	AnnualExpenses              float64  `json:"annual_expenses" yaml:"annual_expenses"`
	SafeWithdrawalRate          float64  `json:"safe_withdrawal_rate,omitempty" yaml:"safe_withdrawal_rate,omitempty"`   // Default: 0.04
	AssumedAnnualReturn         *float64 `json:"assumed_annual_return,omitempty" yaml:"assumed_annual_return,omitempty"` // Default: 0.05
	CurrentCalendarYear         int      `json:"current_calendar_year" yaml:"current_calendar_year"`
	MaxMonths                   int      `json:"max_months,omitempty" yaml:"max_months,omitempty"` // Default: 600
	MaxYears                    float64  `json:"max_years,omitempty" yaml:"max_years,omitempty"`   // Default: 50
}

// FIProjection is the outcome of the month-by-month FI simulation. Reached
// is authoritative; ProjectedYear is only meaningful for a positive
// CurrentCalendarYear.
type FIProjection struct {
	Reached                 bool    `json:"reached" yaml:"reached"`
	ProjectedYear           FIYear  `json:"projected_year" yaml:"projected_year"`
	YearsToGo               int     `json:"years_to_go" yaml:"years_to_go"`
	FinalNetWorth           float64 `json:"final_net_worth" yaml:"final_net_worth"`
	FireNumber              float64 `json:"fire_number" yaml:"fire_number"`
	CurrentNetWorth         float64 `json:"current_net_worth" yaml:"current_net_worth"`
	ProjectedMonthlySavings float64 `json:"projected_monthly_savings" yaml:"projected_monthly_savings"`
	MonthsSimulated         int     `json:"months_simulated" yaml:"months_simulated"`
	CurrentLiquidAssets     float64 `json:"current_liquid_assets" yaml:"current_liquid_assets"`
	IlliquidAssetValue      float64 `json:"illiquid_asset_value" yaml:"illiquid_asset_value"`
}

// GoalInputs are the arguments of the goal tiering engine
type GoalInputs struct {
	Expenses                  []ExpenseItem `json:"expenses" yaml:"expenses"`
	TotalPassiveMonthlyIncome float64       `json:"total_passive_monthly_income" yaml:"total_passive_monthly_income"`
	NonPortfolioMonthlyIncome float64       `json:"non_portfolio_monthly_income" yaml:"non_portfolio_monthly_income"`
	BlendedYieldPercent       float64       `json:"blended_yield_percent" yaml:"blended_yield_percent"`
	CurrentPortfolioValue     float64       `json:"current_portfolio_value" yaml:"current_portfolio_value"`
}

// Snapshot is the flattened, derived view of a Plan fed to the engine
type Snapshot struct {
	Income                []IncomeSource `json:"income" yaml:"income"`
	Expenses              []ExpenseItem  `json:"expenses" yaml:"expenses"`
	BlendedYieldPercent   float64        `json:"blended_yield_percent" yaml:"blended_yield_percent"`
	PortfolioValue        float64        `json:"portfolio_value" yaml:"portfolio_value"`
	MonthlyDividendIncome float64        `json:"monthly_dividend_income" yaml:"monthly_dividend_income"`
	RentalIncome          float64        `json:"rental_income" yaml:"rental_income"`
	SavingsIncome         float64        `json:"savings_income" yaml:"savings_income"`
	OtherIncome           float64        `json:"other_income" yaml:"other_income"`
	JobIncome             float64        `json:"job_income" yaml:"job_income"`
	TotalPassiveIncome    float64        `json:"total_passive_income" yaml:"total_passive_income"`
	NonPortfolioIncome    float64        `json:"non_portfolio_income" yaml:"non_portfolio_income"`
	TotalExpenses         float64        `json:"total_expenses" yaml:"total_expenses"`
	RetirementValue       float64        `json:"retirement_value" yaml:"retirement_value"`
	HouseValue            float64        `json:"house_value" yaml:"house_value"`
	LiquidAssets          float64        `json:"liquid_assets" yaml:"liquid_assets"`
}

// TotalMonthlyIncome is passive income plus job income
func (s *Snapshot) TotalMonthlyIncome() float64 {
	return s.TotalPassiveIncome + s.JobIncome
}

// GoalInputs returns the tiering arguments for this snapshot
func (s *Snapshot) GoalInputs() GoalInputs {
	return GoalInputs{
		Expenses:                  s.Expenses,
		TotalPassiveMonthlyIncome: s.TotalPassiveIncome,
		NonPortfolioMonthlyIncome: s.NonPortfolioIncome,
		BlendedYieldPercent:       s.BlendedYieldPercent,
		CurrentPortfolioValue:     s.PortfolioValue,
	}
}

// Summary holds the dashboard headline figures
type Summary struct {
	TotalMonthlyIncome      float64 `json:"total_monthly_income" yaml:"total_monthly_income"`
	TotalMonthlyExpenses    float64 `json:"total_monthly_expenses" yaml:"total_monthly_expenses"`
	MonthlySavings          float64 `json:"monthly_savings" yaml:"monthly_savings"`
	SavingsRatePercent      float64 `json:"savings_rate_percent" yaml:"savings_rate_percent"`
	FireNumber              float64 `json:"fire_number" yaml:"fire_number"`
	FireProgressPercent     float64 `json:"fire_progress_percent" yaml:"fire_progress_percent"`
	StillNeeded             float64 `json:"still_needed" yaml:"still_needed"`
	GoalsAchieved           int     `json:"goals_achieved" yaml:"goals_achieved"`
	GoalsTotal              int     `json:"goals_total" yaml:"goals_total"`
	NextGoalProgressPercent float64 `json:"next_goal_progress_percent" yaml:"next_goal_progress_percent"`
}

// PlanReport is everything the dashboard shows for one plan
type PlanReport struct {
	Name       string       `json:"name" yaml:"name"`
	Snapshot   Snapshot     `json:"snapshot" yaml:"snapshot"`
	Goals      []Goal       `json:"goals" yaml:"goals"`
	NextGoal   *Goal        `json:"next_goal,omitempty" yaml:"next_goal,omitempty"`
	Inputs     FIInputs     `json:"inputs" yaml:"inputs"` // Projection inputs with defaults applied
	Projection FIProjection `json:"projection" yaml:"projection"`
	Summary    Summary      `json:"summary" yaml:"summary"`
}

// PlanComparison holds reports for several saved plans
type PlanComparison struct {
	Reports           []PlanReport `json:"reports" yaml:"reports"`
	EarliestFIPlan    string       `json:"earliest_fi_plan" yaml:"earliest_fi_plan"`
	MostGoalsPlan     string       `json:"most_goals_plan" yaml:"most_goals_plan"`
	HighestSavings    string       `json:"highest_savings_plan" yaml:"highest_savings_plan"`
	KeyConsiderations []string     `json:"key_considerations" yaml:"key_considerations"`
}
