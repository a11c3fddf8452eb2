package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Sh returns a tool that runs a shell command after validating every invoked
// program against allowlist.
func Sh(allowlist []string) Tool {
	type args struct {
		Command string `json:"command"`
	}
	allowed := make(map[string]bool, len(allowlist))
	for _, name := range allowlist {
		allowed[name] = true
	}
	catalog := append([]string(nil), allowlist...)
	sort.Strings(catalog)

	return Tool{
		Def: Def(
			"sh",
			fmt.Sprintf("Run a shell command. Allowed programs: %s.", strings.Join(catalog, ", ")),
			objectSchema(map[string]any{
				"command": stringProp("Shell command line"),
			}, "command"),
		),
		Invoke: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			if err := ValidateCommand(a.Command, allowed); err != nil {
				return fmt.Sprintf("Command rejected: %v", err), nil
			}

			cmd := exec.CommandContext(ctx, "sh", "-c", a.Command)
			out, err := cmd.CombinedOutput()
			result := Paginate(string(out), 0, DefaultNumChars)
			if err != nil {
				if len(result) > 0 {
					result += "\n"
				}
				result += fmt.Sprintf("Command failed: %v", err)
			}
			if result == "" {
				result = "Command succeeded with no output."
			}
			return result, nil
		},
	}
}

// ValidateCommand parses command and checks that every invoked program is in
// allowed. Commands that cannot be parsed, use non-literal program names, or
// invoke anything outside the allowlist are rejected.
func ValidateCommand(command string, allowed map[string]bool) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	var verr error
	syntax.Walk(file, func(node syntax.Node) bool {
		if verr != nil {
			return false
		}
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}
		name := literalWord(call.Args[0])
		if name == "" {
			verr = fmt.Errorf("non-literal program name")
			return false
		}
		if !allowed[filepath.Base(name)] {
			verr = fmt.Errorf("program %q is not in the allowlist", name)
			return false
		}
		return true
	})
	return verr
}

// literalWord returns the word's text when it is composed only of plain
// literals, "" otherwise (expansions, substitutions, quoting with variables).
func literalWord(word *syntax.Word) string {
	var sb strings.Builder
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok {
					return ""
				}
				sb.WriteString(lit.Value)
			}
		default:
			return ""
		}
	}
	return sb.String()
}
