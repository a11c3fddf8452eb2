package review

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeResource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResourcesFile(t *testing.T) {
	dir := t.TempDir()
	writeResource(t, dir, "style.md", "use tabs")

	out := LoadResources(context.Background(), []string{"file://" + dir + "/*.md"}, zap.NewNop())
	assert.Contains(t, out, "style.md")
	assert.Contains(t, out, "use tabs")
}

func TestLoadResourcesFileDeduplicates(t *testing.T) {
	dir := t.TempDir()
	writeResource(t, dir, "style.md", "use tabs")

	uris := []string{"file://" + dir + "/*.md", "file://" + dir + "/style.md"}
	out := LoadResources(context.Background(), uris, zap.NewNop())
	assert.Equal(t, 1, strings.Count(out, "use tabs"))
}

func TestLoadResourcesSkill(t *testing.T) {
	dir := t.TempDir()
	writeResource(t, dir, "review.md", "---\ntitle: Review Skill\ndescription: How to review.\n---\nbody text\n")
	writeResource(t, dir, "notes.txt", "not markdown")

	out := LoadResources(context.Background(), []string{"skill://" + dir + "/*"}, zap.NewNop())
	assert.Contains(t, out, "# Review Skill")
	assert.Contains(t, out, "How to review.")
	assert.NotContains(t, out, "body text", "skill resources embed frontmatter only")
	assert.NotContains(t, out, "not markdown")
}

func TestLoadResourcesShell(t *testing.T) {
	out := LoadResources(context.Background(), []string{"sh://echo resource output"}, zap.NewNop())
	assert.Contains(t, out, "--- sh://echo resource output ---")
	assert.Contains(t, out, "resource output")
}

func TestLoadResourcesShellFailureSkipped(t *testing.T) {
	out := LoadResources(context.Background(), []string{"sh://exit 3"}, zap.NewNop())
	assert.Empty(t, out)
}

func TestLoadResourcesUnknownSchemeSkipped(t *testing.T) {
	out := LoadResources(context.Background(), []string{"ftp://nope"}, zap.NewNop())
	assert.Empty(t, out)
}

func TestSkillSummaryWithoutFrontmatter(t *testing.T) {
	summary, err := skillSummary("just markdown, no frontmatter")
	require.NoError(t, err)
	assert.Empty(t, summary)
}
