// Package output renders violation reports and execution traces as
// markdown or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wardenci/warden/internal/llm"
	"github.com/wardenci/warden/internal/review"
)

// FormatViolationsMarkdown renders the grouped violations with per-rule
// tips. Files and rules are emitted in sorted order so the report is stable
// regardless of task completion order.
func FormatViolationsMarkdown(byFile map[string]map[string][]review.Violation, tips map[string]string) string {
	if len(byFile) == 0 {
		return "No violations found"
	}

	var sb strings.Builder
	for _, file := range sortedKeys(byFile) {
		fmt.Fprintf(&sb, "# Violations in %s\n\n", file)
		rules := byFile[file]
		for _, ruleName := range sortedKeys(rules) {
			fmt.Fprintf(&sb, "## Rule: %s\n\n", ruleName)
			for _, v := range rules[ruleName] {
				fmt.Fprintf(&sb, "- Lines %d-%d: %s\n", v.StartLine, v.EndLine, v.Detail)
			}
			if tip := strings.TrimSpace(tips[ruleName]); tip != "" {
				fmt.Fprintf(&sb, "\n**Tip:** %s\n", tip)
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatTraceMarkdown renders per-task conversation records: the focused
// files, the tool catalog as fenced YAML, and every message in order.
func FormatTraceMarkdown(entries []review.TraceEntry) string {
	var sb strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&sb, "# Worker %s: %s\n\n", entry.WorkerID, entry.RuleName)
		fmt.Fprintf(&sb, "Status: %s | Elapsed: %.2fs\n\n", entry.Status, entry.ElapsedSecs)

		sb.WriteString("## Focused Files\n\n")
		for _, file := range entry.Files {
			fmt.Fprintf(&sb, "- %s\n", file)
		}
		sb.WriteString("\n")

		if len(entry.Tools) > 0 {
			sb.WriteString(formatToolCatalog(entry.Tools))
		}

		sb.WriteString("## Messages\n\n")
		for i, msg := range entry.Messages {
			sb.WriteString(formatMessage(msg, i))
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func formatToolCatalog(tools []llm.ToolDefinition) string {
	text, err := yaml.Marshal(tools)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(
		"## Tools\n\n<details>\n<summary>Show tools</summary>\n\n```yaml\n%s\n```\n\n</details>\n\n",
		strings.TrimSpace(string(text)))
}

func formatMessage(msg llm.Message, index int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %d. %s\n\n", index+1, msg.Role)

	content := messageContent(msg)
	calls := msg.ToolCalls()

	switch {
	case content != "":
		switch msg.Role {
		case llm.RoleAssistant:
			sb.WriteString(blockquote(content) + "\n\n")
		case llm.RoleTool:
			fence := fenceFor(content)
			fmt.Fprintf(&sb, "<details>\n<summary>Show content</summary>\n\n%s\n%s\n%s\n\n</details>\n\n",
				fence, content, fence)
		default:
			fmt.Fprintf(&sb, "<details>\n<summary>Show content</summary>\n\n%s\n\n</details>\n\n",
				blockquote(content))
		}
	case len(calls) == 0:
		sb.WriteString("Empty message.\n\n")
	}

	for _, call := range calls {
		sb.WriteString(formatToolCall(call))
	}
	return sb.String()
}

func messageContent(msg llm.Message) string {
	if msg.Role == llm.RoleTool {
		var parts []string
		for _, part := range msg.Content {
			if part.Kind == llm.ContentToolResult && part.ToolResult != nil {
				parts = append(parts, part.ToolResult.Content)
			}
		}
		return strings.Join(parts, "\n")
	}
	return msg.TextContent()
}

// formatToolCall renders one call's arguments. The think tool's reasoning
// reads best as a blockquote; everything else becomes fenced YAML.
func formatToolCall(call llm.ToolCall) string {
	if call.Name == "think" {
		var args struct {
			Reasoning string `json:"reasoning"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err == nil && args.Reasoning != "" {
			return fmt.Sprintf("- **think**\n\n%s\n\n", blockquote(args.Reasoning))
		}
	}
	if call.Name == "sh" {
		var args struct {
			Command string `json:"command"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err == nil && args.Command != "" {
			return fmt.Sprintf("- **sh**\n\n```sh\n%s\n```\n\n", args.Command)
		}
	}

	formatted := string(call.Arguments)
	var decoded any
	if err := json.Unmarshal(call.Arguments, &decoded); err == nil {
		if text, err := yaml.Marshal(decoded); err == nil {
			formatted = strings.TrimSpace(string(text))
		}
	}
	return fmt.Sprintf("- **%s**\n\n```yaml\n%s\n```\n\n", call.Name, formatted)
}

func blockquote(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

// fenceFor picks a code fence longer than any backtick run in content, so
// tool output containing fences still renders as one block.
func fenceFor(content string) string {
	longest := 0
	run := 0
	for _, r := range content {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	n := longest + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat("`", n)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
