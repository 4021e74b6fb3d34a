package cmd

import (
	"fmt"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/config"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/provision"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/steps"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	appliedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// provisionCmd represents the provision command
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Run the provisioning pipeline against this machine",
	Long: `The provision command runs the ordered pipeline of idempotent steps
against the local host, halting at the first failure. Steps whose effect is
already in place are skipped, so re-running after a failure resumes from
where it stopped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := cmd.Context().Value("logger").(log.Logger)
		cfg, err := config.Load(cfgFile, promptConfigValue, logger)
		if err != nil {
			return err
		}

		pipeline := steps.DefaultPipeline(cfg, promptPassword)
		p := provision.New(cmdRunner, logger, pipeline)
		result, runErr := p.Run()
		printSummary(cmd, result)
		return runErr
	},
}

func printSummary(cmd *cobra.Command, result *provision.RunResult) {
	for _, sr := range result.Steps {
		var rendered string
		switch sr.Outcome {
		case provision.OutcomeApplied:
			rendered = appliedStyle.Render("applied")
		case provision.OutcomeSkipped:
			rendered = skippedStyle.Render("skipped")
		case provision.OutcomeFailed:
			rendered = failedStyle.Render("failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", sr.Step, rendered)
	}
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}
