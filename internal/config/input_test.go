package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testPlan := "name: \"starter\"\n" +
		"personal:\n" +
		"  career: \"Teacher\"\n" +
		"  city: \"Boise\"\n" +
		"  relationship_status: \"single\"\n" +
		"  annual_income: 52000\n" +
		"portfolio:\n" +
		"  total_value: 20000\n" +
		"  holdings:\n" +
		"    - symbol: \"KO\"\n" +
		"      percent: 60\n" +
		"      yield: 3.05\n" +
		"    - symbol: \"PG\"\n" +
		"      percent: 40\n" +
		"      yield: 2.45\n" +
		"retirement_accounts:\n" +
		"  - type: \"roth-ira\"\n" +
		"    balance: 15000\n" +
		"expenses:\n" +
		"  - name: \"Rent\"\n" +
		"    amount: 1100\n" +
		"  - name: \"Food\"\n" +
		"    amount: 400\n"

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPlan), 0o644))

	parser := NewInputParser()
	plan, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "starter", plan.Name)
	assert.Equal(t, 52000.0, plan.Personal.AnnualIncome)
	assert.Len(t, plan.Portfolio.Holdings, 2)
	assert.Equal(t, "Roth IRA", plan.RetirementAccounts[0].Label())
	assert.Len(t, plan.Expenses, 2)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"j","expenses":[{"name":"Rent","amount":900}]}`), 0o644))

	plan, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 900.0, plan.Expenses[0].MonthlyAmount)
}

func TestParse_AnnualReturn(t *testing.T) {
	parser := NewInputParser()

	plan, err := parser.Parse([]byte("name: flat\nassumptions:\n  annual_return: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, plan.Assumptions.AssumedAnnualReturn, "an explicit 0% return is kept")
	assert.Zero(t, *plan.Assumptions.AssumedAnnualReturn)

	plan, err = parser.Parse([]byte("name: defaults\n"))
	require.NoError(t, err)
	assert.Nil(t, plan.Assumptions.AssumedAnnualReturn)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("expenses: [unterminated"), 0o644))
	_, err = parser.LoadFromFile(path)
	assert.ErrorContains(t, err, "failed to parse YAML")

	require.NoError(t, os.WriteFile(path, []byte("expenses:\n  - name: Rent\n    amount: 0\n"), 0o644))
	_, err = parser.LoadFromFile(path)
	assert.ErrorContains(t, err, "plan validation failed: expenses[0]: amount must be positive")
}

func TestValidatePlan(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(p *domain.Plan)
		wantErr string
	}{
		{"example is valid", func(p *domain.Plan) {}, ""},
		{"negative income", func(p *domain.Plan) { p.Personal.AnnualIncome = -1 }, "personal: annual_income cannot be negative"},
		{"bad relationship", func(p *domain.Plan) { p.Personal.RelationshipStatus = "complicated" }, "relationship_status"},
		{"negative kids", func(p *domain.Plan) { p.Personal.NumberOfKids = -2 }, "number_of_kids"},
		{"empty symbol", func(p *domain.Plan) { p.Portfolio.Holdings[1].Symbol = " " }, "portfolio.holdings[1]: symbol is required"},
		{"percent over 100", func(p *domain.Plan) { p.Portfolio.Holdings[0].PercentOfPortfolio = 150 }, "portfolio.holdings[0]: percent must be between 0 and 100"},
		{"allocation over 100", func(p *domain.Plan) { p.Portfolio.Holdings[0].PercentOfPortfolio = 80 }, "cannot exceed 100%"},
		{"negative yield", func(p *domain.Plan) { p.Portfolio.Holdings[2].AnnualYieldPercent = -1 }, "portfolio.holdings[2]: yield cannot be negative"},
		{"unnamed income", func(p *domain.Plan) { p.OtherIncome[0].Name = "" }, "other_income[0]: name is required"},
		{"negative savings", func(p *domain.Plan) { p.SavingsIncome[0].MonthlyAmount = -5 }, "savings_income[0]: amount cannot be negative"},
		{"unknown account", func(p *domain.Plan) { p.RetirementAccounts[1].Type = "hsa" }, "retirement_accounts[1]: unknown account type \"hsa\""},
		{"negative balance", func(p *domain.Plan) { p.RetirementAccounts[0].Balance = -10 }, "retirement_accounts[0]: balance cannot be negative"},
		{"duplicate house", func(p *domain.Plan) { p.Houses[1].Name = "Home" }, "houses[1]: duplicate house name"},
		{"rental without income", func(p *domain.Plan) { p.Houses[1].MonthlyRentalIncome = 0 }, "houses[1]: monthly_rental_income must be positive"},
		{"zero expense", func(p *domain.Plan) { p.Expenses[2].MonthlyAmount = 0 }, "expenses[2]: amount must be positive"},
		{"NaN expense", func(p *domain.Plan) { p.Expenses[0].MonthlyAmount = math.NaN() }, "expenses[0]: amount must be positive"},
		{"unnamed expense", func(p *domain.Plan) { p.Expenses[3].Name = "" }, "expenses[3]: name is required"},
		{"withdrawal rate", func(p *domain.Plan) { p.Assumptions.SafeWithdrawalRate = 0.3 }, "assumptions: safe_withdrawal_rate"},
		{"return", func(p *domain.Plan) { p.Assumptions.AssumedAnnualReturn = domain.Rate(math.Inf(1)) }, "assumptions: annual_return"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := parser.CreateExamplePlan()
			tt.mutate(plan)
			err := parser.ValidatePlan(plan)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSavePlanFile_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	plan := parser.CreateExamplePlan()

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.SavePlanFile(plan, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, plan, loaded)
}
