package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fiplan/goal-tracker/internal/calculation"
	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/fiplan/goal-tracker/pkg/dateutil"
	"github.com/spf13/cobra"
)

// projectCmd represents the project command.
var projectCmd = &cobra.Command{
	Use:   "project <plan.yaml>",
	Short: "Project the year a plan reaches financial independence",
	Long: `Simulate month by month until liquid assets reach the FIRE number
(annual expenses divided by the safe withdrawal rate). Flags override the
plan's assumptions.`,
	Args: cobra.ExactArgs(1),
	RunE: projectRun,
}

func init() {
	projectCmd.Flags().Float64("swr", 0, "safe withdrawal rate override, e.g. 0.035")
	projectCmd.Flags().Float64("return", 0, "assumed annual return override, e.g. 0.07")
	projectCmd.Flags().Int("simulations", 0, "also run this many Monte Carlo paths with randomized returns")
	projectCmd.Flags().Float64("volatility", calculation.DefaultAnnualVolatility, "annual return standard deviation for --simulations")
	projectCmd.Flags().Uint64("seed", 0, "random seed for --simulations (0 picks one)")
	projectCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
}

func projectRun(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat != tableOutputFormat && outputFormat != jsonOutputFormat {
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}

	plan, err := loadPlanFile(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("swr") {
		plan.Assumptions.SafeWithdrawalRate, _ = cmd.Flags().GetFloat64("swr")
	}
	if cmd.Flags().Changed("return") {
		ret, _ := cmd.Flags().GetFloat64("return")
		plan.Assumptions.AssumedAnnualReturn = domain.Rate(ret)
	}

	now := time.Now()
	snap := calculation.BuildSnapshot(*plan)
	in := calculation.FIInputsFor(snap, plan.Assumptions, now.Year())
	if err := calculation.ValidateInputs(in); err != nil {
		return err
	}
	in = calculation.WithDefaults(in)
	engine := newEngine()
	projection := engine.Project(in)

	var simulated *calculation.MonteCarloResult
	if n, _ := cmd.Flags().GetInt("simulations"); n != 0 {
		volatility, _ := cmd.Flags().GetFloat64("volatility")
		seed, _ := cmd.Flags().GetUint64("seed")
		simulated, err = engine.SimulateFI(cmd.Context(), in, calculation.MonteCarloConfig{
			NumSimulations:   n,
			AnnualVolatility: volatility,
			Seed:             seed,
		})
		if err != nil {
			return fmt.Errorf("failed to simulate FI date: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if outputFormat == jsonOutputFormat {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if simulated != nil {
			return enc.Encode(struct {
				domain.FIProjection
				MonteCarlo *calculation.MonteCarloResult `json:"monte_carlo"`
			}{projection, simulated})
		}
		return enc.Encode(projection)
	}

	t := output.NewStyledTable("Metric", "Value")
	t.Row("Current net worth", output.FormatCurrency(projection.CurrentNetWorth))
	t.Row("Liquid assets", output.FormatCurrency(projection.CurrentLiquidAssets))
	t.Row("FIRE number", output.FormatCurrency(projection.FireNumber))
	t.Row("Monthly savings", output.FormatCurrency(projection.ProjectedMonthlySavings))
	t.Row("FI year", output.FormatYear(projection.ProjectedYear))
	if projection.Reached {
		t.Row("Years to go", fmt.Sprintf("%d", projection.YearsToGo))
		t.Row("FI month", dateutil.MonthAfter(now, projection.MonthsSimulated).Format("January 2006"))
	}
	t.Row("Projected net worth", output.FormatCurrency(projection.FinalNetWorth))
	fmt.Fprintln(out, t.Render())

	if simulated != nil {
		p := simulated.Percentiles
		mc := output.NewStyledTable("Monte Carlo", "Value")
		mc.Row("Paths", fmt.Sprintf("%d", simulated.NumSimulations))
		mc.Row("Reach FI", output.FormatPercentage(simulated.SuccessRate))
		mc.Row("FI year (10th / 50th / 90th)", fmt.Sprintf("%s / %s / %s", p.P10, p.P50, p.P90))
		mc.Row("Median net worth", output.FormatCurrency(simulated.MedianFinalNetWorth))
		fmt.Fprintln(out, mc.Render())
	}
	for _, a := range output.GenerateAssumptions(in) {
		fmt.Fprintf(out, "• %s\n", a)
	}
	return nil
}
