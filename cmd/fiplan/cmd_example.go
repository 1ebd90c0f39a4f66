package main

import (
	"fmt"

	"github.com/fiplan/goal-tracker/internal/config"
	"github.com/spf13/cobra"
)

// exampleCmd represents the example command.
var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example plan file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := "example_plan.yaml"
		if len(args) > 0 {
			filename = args[0]
		}
		parser := config.NewInputParser()
		if err := parser.SavePlanFile(parser.CreateExamplePlan(), filename); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", filename)
		return nil
	},
}
