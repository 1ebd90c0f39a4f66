package main

import (
	"encoding/json"
	"fmt"

	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/spf13/cobra"
)

// goalsCmd represents the goals command.
var goalsCmd = &cobra.Command{
	Use:   "goals <plan.yaml>",
	Short: "List cumulative expense goals and what each one needs",
	Args:  cobra.ExactArgs(1),
	RunE:  goalsRun,
}

func init() {
	goalsCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	goalsCmd.Flags().Bool("offline", false, "do not call the dividend-yield API; use estimates for missing yields")
}

func goalsRun(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	offline, _ := cmd.Flags().GetBool("offline")

	_, report, err := loadAndEvaluate(cmd.Context(), args[0], offline)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case jsonOutputFormat:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Goals)
	case tableOutputFormat:
		if len(report.Goals) == 0 {
			fmt.Fprintln(out, "No expenses entered.")
			return nil
		}
		fmt.Fprintln(out, output.GoalsTable(report.Goals))
		fmt.Fprintf(out, "%d of %d goals covered by %s/mo passive income\n",
			report.Summary.GoalsAchieved, report.Summary.GoalsTotal, output.FormatCurrency(report.Snapshot.TotalPassiveIncome))
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}
}
