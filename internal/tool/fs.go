package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	maxGlobDepth   = 20
	maxGlobMatches = 1000
)

// Read returns a tool that reads file contents with pagination.
func Read() Tool {
	type args struct {
		Path   string `json:"path"`
		Start  int    `json:"start"`
		Length int    `json:"length"`
	}
	return Tool{
		Def: Def(
			"read",
			"Read file contents with optional character range.",
			objectSchema(map[string]any{
				"path":   stringProp("File path"),
				"start":  intProp("Optional start character index (default: 0)"),
				"length": intProp("Optional length in characters (default: 5000)"),
			}, "path"),
		),
		Invoke: func(_ context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			content, err := os.ReadFile(a.Path)
			if err != nil {
				return fmt.Sprintf("Error reading file: %v", err), nil
			}
			return Paginate(string(content), a.Start, a.Length), nil
		},
	}
}

// Ls returns a tool that lists directory contents, optionally recursive.
func Ls() Tool {
	type args struct {
		Path  string `json:"path"`
		Depth int    `json:"depth"`
	}
	return Tool{
		Def: Def(
			"ls",
			"List directory contents with optional recursive depth.",
			objectSchema(map[string]any{
				"path":  stringProp("Directory path"),
				"depth": intProp("Optional recursion depth (0 for non-recursive)"),
			}, "path"),
		),
		Invoke: func(_ context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			var items []string
			if err := listDir(a.Path, a.Depth, 0, "", &items); err != nil {
				return fmt.Sprintf("Error listing directory: %v", err), nil
			}
			return strings.Join(items, "\n"), nil
		},
	}
}

func listDir(path string, maxDepth, depth int, prefix string, items *[]string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		kind := "f"
		if entry.IsDir() {
			kind = "d"
		}
		*items = append(*items, fmt.Sprintf("%s%s %s", prefix, kind, entry.Name()))

		if entry.IsDir() && depth < maxDepth {
			if err := listDir(filepath.Join(path, entry.Name()), maxDepth, depth+1, prefix+"  ", items); err != nil {
				return err
			}
		}
	}
	return nil
}

// Glob returns a tool that finds files matching a glob pattern.
func Glob() Tool {
	type args struct {
		Path    string `json:"path"`
		Pattern string `json:"pattern"`
	}
	return Tool{
		Def: Def(
			"glob",
			"Find files matching a glob pattern under a directory.",
			objectSchema(map[string]any{
				"path":    stringProp("Directory path to search"),
				"pattern": stringProp("Glob pattern (e.g., **/*.go)"),
			}, "path", "pattern"),
		),
		Invoke: func(_ context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			if !doublestar.ValidatePattern(a.Pattern) {
				return fmt.Sprintf("Invalid glob pattern: %s", a.Pattern), nil
			}
			matches, err := GlobFiles(a.Path, a.Pattern)
			if err != nil {
				return fmt.Sprintf("Error searching: %v", err), nil
			}
			return strings.Join(matches, "\n"), nil
		},
	}
}

// GlobFiles walks root and returns paths matching the doublestar pattern,
// capped by depth and match count. Also used by the resource loader.
func GlobFiles(root, pattern string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if strings.Count(rel, string(filepath.Separator)) >= maxGlobDepth {
				return fs.SkipDir
			}
			return nil
		}
		if len(matches) >= maxGlobMatches {
			return fs.SkipAll
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}
