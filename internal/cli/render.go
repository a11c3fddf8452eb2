package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/output"
)

func newRenderCommand() *cobra.Command {
	var (
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Convert a JSON report or trace artifact to markdown",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !strings.HasSuffix(inputPath, ".json") {
				return fmt.Errorf("input must be a .json artifact: %s", inputPath)
			}
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			markdown, err := output.RenderJSON(data)
			if err != nil {
				return err
			}

			if outputPath == "" {
				fmt.Println(markdown)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(markdown+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			logger.Info("rendered", zap.String("path", outputPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "JSON artifact to render")
	cmd.Flags().StringVar(&outputPath, "output", "", "markdown destination (default: stdout)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
