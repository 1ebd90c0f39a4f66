package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fiplan/goal-tracker/internal/output"
	"github.com/fiplan/goal-tracker/internal/yield"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find ticker symbols by company name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  searchRun,
}

func init() {
	searchCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
}

func searchRun(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	p := newMarketData(settings, newHTTPClient(settings))
	if p == nil {
		return fmt.Errorf("symbol search: %w (set FMP_API_KEY or FINNHUB_API_KEY)", yield.ErrMissingAPIKey)
	}
	matches, err := p.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		if errors.Is(err, yield.ErrRateLimited) {
			return fmt.Errorf("symbol search is rate limited, try again later: %w", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case jsonOutputFormat:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	case tableOutputFormat:
		if len(matches) == 0 {
			fmt.Fprintln(out, "No matches.")
			return nil
		}
		t := output.NewStyledTable("Symbol", "Name", "Exchange", "Type")
		for _, m := range matches {
			t.Row(m.Symbol, m.Name, m.Exchange, m.Type)
		}
		fmt.Fprintln(out, t.Render())
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}
}
