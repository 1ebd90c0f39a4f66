package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fiplan/goal-tracker/internal/domain"
	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/fiplan/goal-tracker/internal/yield"
	"github.com/spf13/cobra"
)

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:   "report <plan.yaml>",
	Short: "Show the full goal and FI report for a plan",
	Long: `Evaluate a plan file and print the dashboard: summary figures, expense goals,
income sources, insights and the FI projection. Holdings without a yield are
looked up through the dividend-yield service.`,
	Args: cobra.ExactArgs(1),
	RunE: reportRun,
}

func init() {
	reportCmd.Flags().StringP("format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" (or all, with --save)")
	reportCmd.Flags().String("save", "", "write the report to a timestamped file in this directory instead of stdout")
	reportCmd.Flags().Bool("offline", false, "do not call the dividend-yield API; use estimates for missing yields")
}

// loadAndEvaluate loads a plan file, resolves missing yields and evaluates it.
func loadAndEvaluate(ctx context.Context, path string, offline bool) (*domain.Plan, *domain.PlanReport, error) {
	plan, err := loadPlanFile(path)
	if err != nil {
		return nil, nil, err
	}
	fillYields(ctx, plan, offline)
	report, err := newEngine().Evaluate(ctx, *plan)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to evaluate plan: %w", err)
	}
	return plan, report, nil
}

// fillYields resolves holdings without a yield, using the store as a cache
// when it can be opened.
func fillYields(ctx context.Context, plan *domain.Plan, offline bool) {
	needsLookup := false
	for _, h := range plan.Portfolio.Holdings {
		if h.AnnualYieldPercent == 0 {
			needsLookup = true
			break
		}
	}
	if !needsLookup {
		return
	}

	var cache yield.Cache
	st, err := openStore(settings)
	if err != nil {
		logger.Warn("Yield cache unavailable", "error", err)
	} else {
		defer st.Close()
		cache = st
	}
	resolveHoldingYields(ctx, newResolver(settings, newHTTPClient(settings), cache, offline), plan)
}

func reportRun(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	saveDir, _ := cmd.Flags().GetString("save")
	offline, _ := cmd.Flags().GetBool("offline")

	f := output.GetFormatterByName(format)
	if f == nil && output.NormalizeFormatName(format) != "all" {
		return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
	}

	_, report, err := loadAndEvaluate(cmd.Context(), args[0], offline)
	if err != nil {
		return err
	}

	if saveDir != "" {
		if err := os.MkdirAll(saveDir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
		paths, err := output.GenerateReport(report, format, saveDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	}
	if f == nil {
		return fmt.Errorf("format %q can only be saved; use --save", format)
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	if f.Name() == "markdown" {
		rendered, err := output.RenderMarkdown(string(data), "auto", 100)
		if err != nil {
			return err
		}
		data = []byte(rendered)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
