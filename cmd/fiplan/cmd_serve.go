package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/fiplan/goal-tracker/internal/advisor"
	"github.com/fiplan/goal-tracker/internal/config"
	"github.com/fiplan/goal-tracker/internal/server"
	"github.com/fiplan/goal-tracker/internal/yield"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the dividend-yield, symbol search, chat and plan evaluation endpoints
under /api. Yields are cached in the local store for the rest of the day.`,
	Args: cobra.NoArgs,
	RunE: serveRun,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from server_addr, :5001)")
	serveCmd.Flags().Bool("fallback", false, "answer failed yield lookups with estimates instead of 404")
}

func serveRun(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = settings.ServerAddr
	}
	fallback, _ := cmd.Flags().GetBool("fallback")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(settings)
	if err != nil {
		return err
	}
	defer st.Close()

	client := newHTTPClient(settings)

	var provider yield.Provider
	var searcher server.Searcher
	if md := newMarketData(settings, client); md != nil {
		provider, searcher = md, md
	} else {
		logger.Warn("No market data API key set; yield lookups will fail", "provider", settings.YieldProvider)
	}
	resolver := yield.NewResolver(provider, st, logger)
	resolver.Concurrency = settings.BatchConcurrency
	if !fallback {
		resolver.Fallback = nil
	}

	var advProvider advisor.Provider
	if settings.AdvisorProvider == config.AdvisorAPI {
		logger.Warn("advisor 'api' would forward chat to itself; chat disabled")
	} else {
		advProvider, err = newAdvisorProvider(ctx, settings, client)
		if err != nil {
			if !errors.Is(err, advisor.ErrNoProvider) {
				return err
			}
			logger.Warn("Chat disabled", "error", err)
		}
	}

	srv := server.New(resolver, searcher, advisor.New(advProvider, logger), logger)
	srv.Engine = newEngine()
	return srv.ListenAndServe(ctx, addr)
}
