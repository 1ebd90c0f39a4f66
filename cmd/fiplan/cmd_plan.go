package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fiplan/goal-tracker/internal/config"
	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/fiplan/goal-tracker/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// planCmd groups the saved-plan subcommands.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Save, load, list and delete named plans in the local store",
}

var planSaveCmd = &cobra.Command{
	Use:   "save <name> <plan.yaml>",
	Short: "Validate a plan file and save it under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlanFile(args[1])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			if err := st.SavePlan(args[0], *plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved plan %q\n", args[0])
			return nil
		})
	},
}

var planLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a saved plan as YAML, or write it with --out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outFile, _ := cmd.Flags().GetString("out")
		return withStore(func(st *store.Store) error {
			plan, err := st.LoadPlan(args[0])
			if err != nil {
				return err
			}
			if outFile != "" {
				if err := config.NewInputParser().SavePlanFile(plan, outFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote plan %q to %s\n", args[0], outFile)
				return nil
			}
			data, err := yaml.Marshal(plan)
			if err != nil {
				return fmt.Errorf("failed to marshal plan: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		})
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved plans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")
		return withStore(func(st *store.Store) error {
			records, err := st.ListPlans()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch outputFormat {
			case jsonOutputFormat:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			case tableOutputFormat:
				if len(records) == 0 {
					fmt.Fprintln(out, "No saved plans.")
					return nil
				}
				t := output.NewStyledTable("Name", "Saved", "Expenses", "Holdings")
				for _, r := range records {
					t.Row(r.Name, r.SavedAt.Local().Format(time.DateTime),
						fmt.Sprintf("%d", len(r.Plan.Expenses)), fmt.Sprintf("%d", len(r.Plan.Portfolio.Holdings)))
				}
				fmt.Fprintln(out, t.Render())
				return nil
			default:
				return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
			}
		})
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			if err := st.DeletePlan(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %q\n", args[0])
			return nil
		})
	},
}

func init() {
	planLoadCmd.Flags().String("out", "", "write the plan to this YAML file")
	planListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	planCmd.AddCommand(planSaveCmd)
	planCmd.AddCommand(planLoadCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planDeleteCmd)
}

func withStore(fn func(st *store.Store) error) error {
	st, err := openStore(settings)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
