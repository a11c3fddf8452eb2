package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wardenci/warden/internal/gitctx"
	"github.com/wardenci/warden/internal/tool"
)

// Overthinking thresholds for the think tool. Brief reasoning should run a
// few sentences, not paragraphs.
const (
	maxReasoningLines = 10
	maxReasoningChars = 1500
)

// violationSink is a task-local violation accumulator. It is written only by
// the owning worker's tool invocations, so no locking is needed.
type violationSink struct {
	violations []Violation
}

// reportTool appends reported violations to the task-local sink. An empty
// list is an error result: the model must retry with findings or stop.
func reportTool(sink *violationSink) tool.Tool {
	type args struct {
		Violations []Violation `json:"violations"`
	}
	return tool.Tool{
		Def: tool.Def(
			"report",
			"Report rule violations found during review. MUST call 'think' tool first.",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"violations": map[string]any{
						"type":        "array",
						"description": "List of violations",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"file":       map[string]any{"type": "string", "description": "File path"},
								"detail":     map[string]any{"type": "string", "description": "Violation detail"},
								"start_line": map[string]any{"type": "integer", "description": "Start line (1-indexed)"},
								"end_line":   map[string]any{"type": "integer", "description": "End line (inclusive)"},
							},
							"required": []string{"file", "detail", "start_line", "end_line"},
						},
					},
				},
				"required": []string{"violations"},
			},
		),
		Invoke: func(_ context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			if len(a.Violations) == 0 {
				return "", fmt.Errorf("empty violations list: report actual findings, or finish the review without calling report")
			}
			sink.violations = append(sink.violations, a.Violations...)
			return "OK", nil
		},
	}
}

// thinkTool acknowledges an explicit reasoning step before reporting. It has
// no side effect beyond returning "OK", with a nudge when reasoning runs long.
func thinkTool() tool.Tool {
	type args struct {
		Reasoning string `json:"reasoning"`
	}
	return tool.Tool{
		Def: tool.Def(
			"think",
			"Think through whether something is a violation (keep reasoning brief and focused). "+
				"MUST be called before reporting any violations.",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"reasoning": map[string]any{
						"type": "string",
						"description": "Brief reasoning (2-4 sentences) about whether the code violates " +
							"the rule, considering exceptions and context",
					},
				},
				"required": []string{"reasoning"},
			},
		),
		Invoke: func(_ context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			lines := len(strings.Split(a.Reasoning, "\n"))
			chars := len([]rune(a.Reasoning))
			if lines > maxReasoningLines || chars > maxReasoningChars {
				return fmt.Sprintf(
					"OK. Note: Overthinking detected (%d lines, %d chars). Keep reasoning concise and focused.",
					lines, chars), nil
			}
			return "OK", nil
		},
	}
}

// diffTool serves the pre-fetched diffs to the model. Excluded paths are
// refused unless force_read is set.
func diffTool(diffs map[string]string) tool.Tool {
	type args struct {
		Path      string `json:"path"`
		ForceRead bool   `json:"force_read"`
	}
	return tool.Tool{
		Def: tool.Def(
			"diff",
			"Get git diff for a file.",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": map[string]any{"type": "string", "description": "File path"},
					"force_read": map[string]any{
						"type": "boolean",
						"description": "Force read files that are normally excluded. These files are " +
							"usually large and not meaningful to review. (default: false)",
					},
				},
				"required": []string{"path"},
			},
		),
		Invoke: func(_ context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			if !a.ForceRead && !gitctx.IncludableDiff(a.Path) {
				return fmt.Sprintf(
					"Skipped '%s':\nFile is excluded.\nThese files are usually large and not meaningful to review.\nUse force_read=true to override if necessary.",
					a.Path), nil
			}
			if d, ok := diffs[a.Path]; ok {
				return d, nil
			}
			return fmt.Sprintf("No diff available for file: %s", a.Path), nil
		},
	}
}
