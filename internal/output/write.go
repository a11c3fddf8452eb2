package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/wardenci/warden/internal/review"
)

// SchemaVersion tags the JSON artifacts so later readers can detect layout
// changes.
const SchemaVersion = "1"

// ViolationFile is the JSON layout of a violation report artifact.
type ViolationFile struct {
	Version    string                                   `json:"version"`
	Violations map[string]map[string][]review.Violation `json:"violations"`
	Tips       map[string]string                        `json:"tips"`
}

// TraceFile is the JSON layout of an execution trace artifact.
type TraceFile struct {
	Version string              `json:"version"`
	Entries []review.TraceEntry `json:"entries"`
}

// WriteViolations writes the report to path, choosing the format from the
// file extension (.md or .json).
func WriteViolations(path string, summary review.Summary) error {
	var content string
	switch {
	case strings.HasSuffix(path, ".json"):
		data, err := json.MarshalIndent(ViolationFile{
			Version:    SchemaVersion,
			Violations: summary.ViolationsByFile,
			Tips:       summary.TipsByRule,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding violations: %w", err)
		}
		content = string(data)
	case strings.HasSuffix(path, ".md"):
		content = FormatViolationsMarkdown(summary.ViolationsByFile, summary.TipsByRule)
	default:
		return fmt.Errorf("output file must end with .md or .json: %s", path)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// WriteTrace writes the execution trace to path, choosing the format from
// the file extension (.md or .json).
func WriteTrace(path string, entries []review.TraceEntry) error {
	var content string
	switch {
	case strings.HasSuffix(path, ".json"):
		data, err := json.MarshalIndent(TraceFile{Version: SchemaVersion, Entries: entries}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding trace: %w", err)
		}
		content = string(data)
	case strings.HasSuffix(path, ".md"):
		content = FormatTraceMarkdown(entries)
	default:
		return fmt.Errorf("trace file must end with .md or .json: %s", path)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing trace file: %w", err)
	}
	return nil
}

// RenderJSON converts a JSON artifact produced by WriteViolations or
// WriteTrace back into markdown. The artifact kind is detected from its
// fields.
func RenderJSON(data []byte) (string, error) {
	var probe struct {
		Violations map[string]map[string][]review.Violation `json:"violations"`
		Entries    []review.TraceEntry                      `json:"entries"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", fmt.Errorf("parsing artifact: %w", err)
	}

	switch {
	case probe.Violations != nil:
		var vf ViolationFile
		if err := json.Unmarshal(data, &vf); err != nil {
			return "", fmt.Errorf("parsing violation artifact: %w", err)
		}
		return FormatViolationsMarkdown(vf.Violations, vf.Tips), nil
	case probe.Entries != nil:
		var tf TraceFile
		if err := json.Unmarshal(data, &tf); err != nil {
			return "", fmt.Errorf("parsing trace artifact: %w", err)
		}
		return FormatTraceMarkdown(tf.Entries), nil
	default:
		return "", fmt.Errorf("unrecognized artifact: expected violations or entries")
	}
}
