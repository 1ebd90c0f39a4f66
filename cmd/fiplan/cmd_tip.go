package main

import (
	"errors"
	"fmt"

	"github.com/fiplan/goal-tracker/internal/advisor"
	"github.com/fiplan/goal-tracker/internal/calculation"
	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/spf13/cobra"
)

// tipCmd represents the tip command.
var tipCmd = &cobra.Command{
	Use:       "tip income|expense <plan.yaml>",
	Short:     "Ask the advisor for one income or cost-cutting tip",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"income", "expense"},
	RunE:      tipRun,
}

func init() {
	tipCmd.Flags().Bool("plain", false, "print the tip without markdown rendering")
}

func tipRun(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if kind != "income" && kind != "expense" {
		return fmt.Errorf("unknown tip kind %q (must be 'income' or 'expense')", kind)
	}
	plain, _ := cmd.Flags().GetBool("plain")

	plan, err := loadPlanFile(args[1])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	provider, err := newAdvisorProvider(ctx, settings, newHTTPClient(settings))
	if err != nil && !errors.Is(err, advisor.ErrNoProvider) {
		return err
	}
	if err != nil {
		logger.Warn("Advisor not configured", "error", err)
	}
	adv := advisor.New(provider, logger)

	snap := calculation.BuildSnapshot(*plan)
	var tip string
	if kind == "income" {
		tip = adv.IncomeTip(ctx, snap)
	} else {
		tip = adv.ExpenseTip(ctx, snap.Expenses)
	}

	if plain {
		fmt.Fprintln(cmd.OutOrStdout(), tip)
		return nil
	}
	rendered, err := output.RenderMarkdown(tip, "auto", 80)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
