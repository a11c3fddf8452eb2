package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/config"
)

func newInitCommand() *cobra.Command {
	var (
		configPath string
		force      bool
		template   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		RunE: func(_ *cobra.Command, _ []string) error {
			var content string
			switch template {
			case "fast":
				content = config.FastTemplate
			case "full":
				content = config.FullTemplate
			default:
				return fmt.Errorf("unknown template %q: expected fast or full", template)
			}

			if !force {
				if _, err := os.Stat(configPath); err == nil {
					return fmt.Errorf("%s already exists: use --force to overwrite", configPath)
				}
			}

			if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			logger.Info("config written",
				zap.String("path", configPath),
				zap.String("template", template))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "warden.toml", "config file path")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().StringVar(&template, "template", "fast",
		"config template: fast (git hooks) or full (CI)")
	return cmd
}
