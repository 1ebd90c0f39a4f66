package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/fiplan/goal-tracker/internal/store"
	"github.com/spf13/cobra"
)

// compareCmd represents the compare command.
var compareCmd = &cobra.Command{
	Use:   "compare <plan>...",
	Short: "Compare several plans side by side",
	Long: `Evaluate two or more plans and compare income, savings rate, goals covered
and FI year. Each argument is a plan file or the name of a saved plan.`,
	Args: cobra.MinimumNArgs(2),
	RunE: compareRun,
}

func init() {
	compareCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	compareCmd.Flags().Bool("offline", false, "do not call the dividend-yield API; use estimates for missing yields")
}

// collectPlans resolves each argument to a plan, reading files first and
// falling back to the saved plans.
func collectPlans(args []string) (map[string]domain.Plan, error) {
	plans := make(map[string]domain.Plan, len(args))
	var st *store.Store
	defer func() {
		if st != nil {
			st.Close()
		}
	}()

	for _, arg := range args {
		if _, err := os.Stat(arg); err == nil {
			plan, err := loadPlanFile(arg)
			if err != nil {
				return nil, err
			}
			name := plan.Name
			if name == "" || plans[name].Name != "" {
				name = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
			}
			plan.Name = name
			plans[name] = *plan
			continue
		}

		if st == nil {
			var err error
			if st, err = openStore(settings); err != nil {
				return nil, err
			}
		}
		plan, err := st.LoadPlan(arg)
		if err != nil {
			return nil, fmt.Errorf("plan %q is neither a file nor a saved plan: %w", arg, err)
		}
		plan.Name = arg
		plans[arg] = *plan
	}
	return plans, nil
}

func compareRun(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	offline, _ := cmd.Flags().GetBool("offline")
	if outputFormat != tableOutputFormat && outputFormat != jsonOutputFormat {
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}

	plans, err := collectPlans(args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	for name, plan := range plans {
		fillYields(ctx, &plan, offline)
		plans[name] = plan
	}

	comparison, err := newEngine().EvaluateAll(ctx, plans)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputFormat == jsonOutputFormat {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(comparison)
	}
	fmt.Fprint(out, output.FormatComparison(comparison))
	return nil
}
