package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/fiplan/goal-tracker/internal/config"
	"github.com/spf13/cobra"
)

const (
	jsonOutputFormat  = "json"
	tableOutputFormat = "table"
)

// Global variables for configuration.
var (
	cfgFile  string
	envFile  string
	debug    bool
	settings *config.Settings
	logger   = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "fiplan"})
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fiplan",
	Short: "Track passive-income goals and project financial independence",
	Long: `fiplan ranks your monthly expenses into cumulative passive-income goals,
shows how much more you need to invest to cover each one, and projects the
year your liquid assets reach your FIRE number.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./fiplan.toml or $XDG_CONFIG_HOME/fiplan/fiplan.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this .env file (default ./.env if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(yieldCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tipCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(compareCmd)
}

// initConfig loads .env, the config file and environment variables, then
// sets the log level.
func initConfig(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	v := config.NewViper(cfgFile)
	_ = v.BindPFlag("debug", cmd.Root().PersistentFlags().Lookup("debug"))

	s, err := config.LoadSettings(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	settings = s

	logger.SetLevel(log.InfoLevel)
	if settings.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	logger.Debug("Using config file", "file", v.ConfigFileUsed())
	return nil
}
