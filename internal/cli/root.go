// Package cli wires the warden commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/logging"
)

var logger *zap.Logger

// NewRootCommand builds the warden command tree.
func NewRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "warden",
		Short:         "Rule-based code review driven by an LLM",
		Long:          "warden reviews a git change-set against custom rules, running one LLM agent per chunk of files and aggregating violations into a pass/fail verdict.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logLevel
			if env := os.Getenv("WARDEN_LOG"); env != "" && !cmd.Flags().Changed("log-level") {
				level = env
			}
			l, err := logging.New(level)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level: debug, info, warn, error (env: WARDEN_LOG)")

	root.AddCommand(newReviewCommand())
	root.AddCommand(newInitCommand())
	root.AddCommand(newRenderCommand())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		if logger != nil {
			logger.Error(err.Error())
		} else {
			os.Stderr.WriteString("error: " + err.Error() + "\n")
		}
		return 1
	}
	return 0
}
