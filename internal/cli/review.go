package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/config"
	"github.com/wardenci/warden/internal/llm"
	"github.com/wardenci/warden/internal/output"
	"github.com/wardenci/warden/internal/review"
)

func newReviewCommand() *cobra.Command {
	var (
		base       string
		configPath string
		apiKey     string
		dryRun     bool
		outputPath string
		tracePath  string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run the configured rules against the current change-set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("no config at %s: run 'warden init' first", configPath)
				}
				return err
			}
			if len(cfg.Rules) == 0 {
				return fmt.Errorf("no rules configured in %s", configPath)
			}

			if apiKey == "" {
				apiKey = os.Getenv("WARDEN_LLM_API_KEY")
			}

			var client llm.Client
			if !dryRun {
				client, err = llm.NewGollmClient(llm.Options{
					Provider:    cfg.LLM.Provider,
					Model:       cfg.LLM.Model,
					APIKey:      apiKey,
					MaxTokens:   cfg.LLM.MaxTokens,
					Temperature: cfg.LLM.Temperature,
				})
				if err != nil {
					return fmt.Errorf("creating LLM client: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := review.Run(ctx, review.Options{
				Config: cfg,
				Client: client,
				Base:   base,
				DryRun: dryRun,
				Trace:  tracePath != "",
				Logger: logger,
			})
			if err != nil {
				return err
			}
			if result.DryRun {
				return nil
			}

			summary := result.Summary

			// The report is always rendered before the exit decision.
			if outputPath != "" {
				if err := output.WriteViolations(outputPath, summary); err != nil {
					return err
				}
				logger.Info("results written", zap.String("path", outputPath))
			} else {
				printViolations(summary)
			}

			if tracePath != "" {
				if err := output.WriteTrace(tracePath, summary.Traces); err != nil {
					return err
				}
				logger.Info("trace written", zap.String("path", tracePath))
			}

			if blocking := summary.BlockingRules(); len(blocking) > 0 {
				logger.Info("if violations are misreported, refine rules",
					zap.String("config", configPath))
				return fmt.Errorf("blocking rules with violations: %s", strings.Join(blocking, ", "))
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d worker(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "",
		"diff base: a ref, ^N/~N relative to HEAD, ROOT for the whole repo, or empty to auto-detect")
	cmd.Flags().StringVar(&configPath, "config", "warden.toml", "config file path")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "LLM API key (env: WARDEN_LLM_API_KEY)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan tasks without executing workers")
	cmd.Flags().StringVar(&outputPath, "output", "", "write the violation report to a .md or .json file")
	cmd.Flags().StringVar(&tracePath, "trace", "", "write the full execution trace to a .md or .json file")
	return cmd
}

func printViolations(summary review.Summary) {
	for _, line := range strings.Split(
		output.FormatViolationsMarkdown(summary.ViolationsByFile, summary.TipsByRule), "\n") {
		logger.Info(line)
	}
}
