package tool

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const maxGrepMatches = 500

// Grep returns a tool that searches file contents with a regular expression.
func Grep() Tool {
	type args struct {
		Path          string `json:"path"`
		Pattern       string `json:"pattern"`
		Glob          string `json:"glob"`
		CaseSensitive bool   `json:"case_sensitive"`
	}
	return Tool{
		Def: Def(
			"grep",
			"Search file contents with a regular expression. Returns path:line:text matches.",
			objectSchema(map[string]any{
				"path":           stringProp("File or directory to search"),
				"pattern":        stringProp("Regular expression"),
				"glob":           stringProp("Optional glob filter for file names (e.g., **/*.go)"),
				"case_sensitive": boolProp("Match case sensitively (default: false)"),
			}, "path", "pattern"),
		),
		Invoke: func(_ context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			pattern := a.Pattern
			if !a.CaseSensitive {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return fmt.Sprintf("Invalid regex: %v", err), nil
			}
			if a.Glob != "" && !doublestar.ValidatePattern(a.Glob) {
				return fmt.Sprintf("Invalid glob pattern: %s", a.Glob), nil
			}
			matches, err := GrepFiles(a.Path, re, a.Glob)
			if err != nil {
				return fmt.Sprintf("Error searching: %v", err), nil
			}
			if len(matches) == 0 {
				return "No matches found.", nil
			}
			return strings.Join(matches, "\n"), nil
		},
	}
}

// GrepFiles searches path (file or directory tree, skipping .git) for lines
// matching re, optionally filtered by a doublestar glob on the relative path.
// Also used by the lua tool bridge.
func GrepFiles(path string, re *regexp.Regexp, glob string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return grepFile(path, re, nil)
	}

	var matches []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		if len(matches) >= maxGrepMatches {
			return fs.SkipAll
		}
		if glob != "" {
			rel, relErr := filepath.Rel(path, p)
			if relErr != nil {
				return nil
			}
			if ok, _ := doublestar.Match(glob, filepath.ToSlash(rel)); !ok {
				return nil
			}
		}
		found, grepErr := grepFile(p, re, matches)
		if grepErr != nil {
			return nil // unreadable or binary files are skipped
		}
		matches = found
		return nil
	})
	return matches, err
}

func grepFile(path string, re *regexp.Regexp, matches []string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return matches, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.ContainsRune(text, 0) {
			return matches, fmt.Errorf("binary file")
		}
		if re.MatchString(text) {
			matches = append(matches, fmt.Sprintf("%s:%d:%s", path, line, text))
			if len(matches) >= maxGrepMatches {
				break
			}
		}
	}
	return matches, scanner.Err()
}
