package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/config"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/steps"

	"github.com/spf13/cobra"
)

var jsonOutput bool

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the ordered provisioning steps without executing them",
	Long: `The plan command builds the pipeline from the configuration and prints
each step with its low-level operations. Nothing is executed and nothing on
the host is touched, so it is safe to run anywhere.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := cmd.Context().Value("logger").(log.Logger)
		cfg, err := config.Load(cfgFile, nil, logger)
		if err != nil {
			return err
		}

		pipeline := steps.DefaultPipeline(cfg, nil)

		if jsonOutput {
			stepsForJSON := []stepForJSON{}
			for _, step := range pipeline {
				stepsForJSON = append(stepsForJSON, stepForJSON{
					Name:        step.Name(),
					Description: step.Description(),
					Details:     step.Details(),
				})
			}
			jsonBytes, err := json.MarshalIndent(stepsForJSON, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal plan to JSON: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(jsonBytes))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "The following steps would run, in order:")
		for _, step := range pipeline {
			fmt.Fprintf(cmd.OutOrStdout(), "=> %s\n", step.Description())
			for _, detail := range step.Details() {
				fmt.Fprintf(cmd.OutOrStdout(), "   - %s\n", detail)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan in JSON format")
}
