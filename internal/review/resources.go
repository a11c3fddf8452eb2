package review

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wardenci/warden/internal/tool"
)

// LoadResources loads supplementary context from resource URIs:
//
//	file://PATTERN  files matching a glob, embedded verbatim
//	skill://PATTERN markdown files whose YAML frontmatter yields title + description
//	sh://CMD        the command's stdout
//
// Failures are logged and skipped; a resource never fails the task.
func LoadResources(ctx context.Context, resources []string, logger *zap.Logger) string {
	var sb strings.Builder
	loaded := make(map[string]bool)

	for _, resource := range resources {
		switch {
		case strings.HasPrefix(resource, "file://"):
			loadFileResource(strings.TrimPrefix(resource, "file://"), loaded, &sb, logger)
		case strings.HasPrefix(resource, "skill://"):
			loadSkillResource(strings.TrimPrefix(resource, "skill://"), loaded, &sb, logger)
		case strings.HasPrefix(resource, "sh://"):
			loadShellResource(ctx, strings.TrimPrefix(resource, "sh://"), &sb, logger)
		default:
			logger.Warn("unknown resource type", zap.String("resource", resource))
		}
	}
	return sb.String()
}

// resolvePattern splits a resource pattern into a base directory and a glob,
// supporting ~/ and absolute patterns.
func resolvePattern(pattern string) (string, string) {
	if rest, ok := strings.CutPrefix(pattern, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return home, rest
		}
		return ".", pattern
	}
	if strings.HasPrefix(pattern, "/") {
		return "/", pattern[1:]
	}
	return ".", pattern
}

func loadFileResource(pattern string, loaded map[string]bool, sb *strings.Builder, logger *zap.Logger) {
	for _, path := range resourceMatches(pattern, logger) {
		if loaded[path] {
			continue
		}
		loaded[path] = true
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("failed to read resource file", zap.String("path", path), zap.Error(err))
			continue
		}
		fmt.Fprintf(sb, "\n--- %s ---\n%s\n", path, content)
	}
}

func loadSkillResource(pattern string, loaded map[string]bool, sb *strings.Builder, logger *zap.Logger) {
	for _, path := range resourceMatches(pattern, logger) {
		if loaded[path] || !strings.HasSuffix(path, ".md") {
			continue
		}
		loaded[path] = true
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("failed to read skill file", zap.String("path", path), zap.Error(err))
			continue
		}
		summary, err := skillSummary(string(content))
		if err != nil {
			logger.Warn("failed to parse skill frontmatter", zap.String("path", path), zap.Error(err))
			continue
		}
		fmt.Fprintf(sb, "\n--- %s ---\n%s\n", path, summary)
	}
}

func loadShellResource(ctx context.Context, command string, sb *strings.Builder, logger *zap.Logger) {
	out, err := exec.CommandContext(ctx, "sh", "-c", command).Output()
	if err != nil {
		logger.Warn("resource command failed", zap.String("command", command), zap.Error(err))
		return
	}
	fmt.Fprintf(sb, "\n--- sh://%s ---\n%s\n", command, out)
}

func resourceMatches(pattern string, logger *zap.Logger) []string {
	base, glob := resolvePattern(pattern)
	matches, err := tool.GlobFiles(base, glob)
	if err != nil {
		logger.Warn("resource glob failed", zap.String("pattern", pattern), zap.Error(err))
	}
	return matches
}

// skillSummary renders a markdown skill file as its frontmatter title and
// description. Files without frontmatter yield an empty summary.
func skillSummary(content string) (string, error) {
	var meta struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	}

	rest, ok := strings.CutPrefix(content, "---\n")
	if ok {
		if front, _, found := strings.Cut(rest, "\n---"); found {
			if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
				return "", err
			}
		}
	}

	var sb strings.Builder
	if meta.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", meta.Title)
	}
	if meta.Description != "" {
		fmt.Fprintf(&sb, "%s\n", meta.Description)
	}
	return sb.String(), nil
}
