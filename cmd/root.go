package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	logger    log.Logger
	cmdRunner system.CommandRunner = &system.LiveCommandRunner{}
	rootCmd                        = &cobra.Command{
		Use:   "astrolab-setup",
		Short: "astrolab-setup provisions a fresh Debian/Mint machine",
		Long: `One-time provisioning for a fresh Debian-based machine: installs and
enables SSH and NetworkManager, sets passwords, grants passwordless sudo,
installs an SSH public key, opens the SSH port, and optionally configures
a static IP. Every step is idempotent, so re-running after a failure
resumes without redoing completed work.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = log.NewSlogLogger(level, cmd.ErrOrStderr())
			ctx := context.WithValue(cmd.Context(), "logger", logger)
			cmd.SetContext(ctx)
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "./setup.yaml", "config file (default is ./setup.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
