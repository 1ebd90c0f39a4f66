package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// nowFunc supplies the current calendar year for projections
var nowFunc = time.Now

// SetNowFunc replaces the clock. Tests use it to pin the current year.
func SetNowFunc(f func() time.Time) { nowFunc = f }

// CalculationEngine orchestrates the goal and projection calculations for a plan
type CalculationEngine struct {
	Debug  bool // Enable debug tracing of the FI simulation
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Project runs the FI simulation, tracing each step when Debug is set.
func (ce *CalculationEngine) Project(in domain.FIInputs) domain.FIProjection {
	if ce.Debug {
		return projectFIYear(in, ce.logger())
	}
	return projectFIYear(in, NopLogger{})
}

// Evaluate calculates the complete dashboard report for one plan
func (ce *CalculationEngine) Evaluate(ctx context.Context, plan domain.Plan) (*domain.PlanReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := BuildSnapshot(plan)
	fiInputs := FIInputsFor(snap, plan.Assumptions, nowFunc().Year())
	if err := ValidateInputs(fiInputs); err != nil {
		return nil, err
	}
	goals := ComputeGoalsFor(snap.GoalInputs())
	projection := ce.Project(fiInputs)

	ce.logger().Debugf("evaluated plan %q: %d goals, %d achieved, FI year %s",
		plan.Name, len(goals), AchievedCount(goals), projection.ProjectedYear)

	report := &domain.PlanReport{
		Name:       plan.Name,
		Snapshot:   snap,
		Goals:      goals,
		NextGoal:   NextGoal(goals),
		Inputs:     WithDefaults(fiInputs),
		Projection: projection,
	}
	report.Summary = buildSummary(report)
	return report, nil
}

// EvaluateAll evaluates several named plans and compares them
func (ce *CalculationEngine) EvaluateAll(ctx context.Context, plans map[string]domain.Plan) (*domain.PlanComparison, error) {
	names := sortedKeys(plans)
	comparison := &domain.PlanComparison{
		Reports: make([]domain.PlanReport, 0, len(names)),
	}
	for _, name := range names {
		plan := plans[name]
		if plan.Name == "" {
			plan.Name = name
		}
		report, err := ce.Evaluate(ctx, plan)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate plan %s: %w", name, err)
		}
		comparison.Reports = append(comparison.Reports, *report)
	}
	ce.compare(comparison)
	return comparison, nil
}

func buildSummary(r *domain.PlanReport) domain.Summary {
	totalIncome := r.Snapshot.TotalMonthlyIncome()
	stillNeeded := r.Projection.FireNumber - r.Snapshot.LiquidAssets
	if stillNeeded < 0 {
		stillNeeded = 0
	}
	s := domain.Summary{
		TotalMonthlyIncome:   totalIncome,
		TotalMonthlyExpenses: r.Snapshot.TotalExpenses,
		MonthlySavings:       totalIncome - r.Snapshot.TotalExpenses,
		SavingsRatePercent:   SavingsRate(totalIncome, r.Snapshot.TotalExpenses),
		FireNumber:           r.Projection.FireNumber,
		FireProgressPercent:  FireProgress(r.Snapshot.LiquidAssets, r.Projection.FireNumber),
		StillNeeded:          stillNeeded,
		GoalsAchieved:        AchievedCount(r.Goals),
		GoalsTotal:           len(r.Goals),
	}
	if r.NextGoal != nil {
		s.NextGoalProgressPercent = GoalProgress(*r.NextGoal)
	}
	return s
}
