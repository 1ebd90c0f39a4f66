package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/fiplan/goal-tracker/internal/yield"
	"github.com/spf13/cobra"
)

// yieldCmd represents the yield command.
var yieldCmd = &cobra.Command{
	Use:   "yield <symbol>...",
	Short: "Look up dividend yields for ticker symbols",
	Long: `Look up the trailing dividend yield of one or more ticker symbols. Results are
cached for the rest of the day; symbols the API cannot answer fall back to
estimates.`,
	Args: cobra.MinimumNArgs(1),
	RunE: yieldRun,
}

func init() {
	yieldCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	yieldCmd.Flags().Bool("offline", false, "do not call the dividend-yield API")
	yieldCmd.Flags().Bool("no-cache", false, "skip the local yield cache")
}

func yieldRun(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	offline, _ := cmd.Flags().GetBool("offline")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if outputFormat != tableOutputFormat && outputFormat != jsonOutputFormat {
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}

	var cache yield.Cache
	if !noCache {
		st, err := openStore(settings)
		if err != nil {
			logger.Warn("Yield cache unavailable", "error", err)
		} else {
			defer st.Close()
			cache = st
		}
	}

	r := newResolver(settings, newHTTPClient(settings), cache, offline)
	quotes := r.LookupBatch(cmd.Context(), args)

	out := cmd.OutOrStdout()
	if outputFormat == jsonOutputFormat {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(quotes)
	}

	t := output.NewStyledTable("Symbol", "Yield", "Source", "Updated")
	for _, q := range quotes {
		t.Row(q.Symbol, output.FormatPercentage(q.DividendYield), q.Source, q.LastUpdated.Local().Format(time.DateTime))
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
