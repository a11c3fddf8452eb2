package review

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/llm"
)

func promptEnv() workerEnv {
	return workerEnv{
		AllChangedFiles: []string{"a.go", "b.go", "c.go"},
		CommitSubjects:  "fix parser\nadd tests",
		Diffs: map[string]string{
			"a.go": "diff for a",
			"b.go": "diff for b",
		},
		Logger: zap.NewNop(),
	}
}

func promptTask(files ...string) Task {
	r := testRule("no-dup", []string{"**/*"}, nil, nil)
	return Task{Rule: &r, Files: files}
}

func TestBuildUserMessageFocusSubset(t *testing.T) {
	env := promptEnv()
	msg := buildUserMessage(context.Background(), promptTask("a.go", "b.go"), env, zap.NewNop())

	assert.Contains(t, msg, "Commit messages:\n\nfix parser\nadd tests")
	assert.Contains(t, msg, "All changed files:\n\n- a.go\n- b.go\n- c.go")
	assert.Contains(t, msg, "Focus on these files:\n\n- a.go\n- b.go")
	assert.Contains(t, msg, "only read the focused files")
	assert.Contains(t, msg, "<rule>\n\ninstruction for no-dup\n\n</rule>")
	assert.Contains(t, msg, "```diff\ndiff for a\n```")
	assert.Contains(t, msg, "```diff\ndiff for b\n```")
}

func TestBuildUserMessageAllFilesFocused(t *testing.T) {
	env := promptEnv()
	msg := buildUserMessage(context.Background(), promptTask("a.go", "b.go", "c.go"), env, zap.NewNop())

	assert.Contains(t, msg, "Changed files:\n\n- a.go\n- b.go\n- c.go")
	assert.NotContains(t, msg, "Focus on these files")
	assert.NotContains(t, msg, "All changed files")
}

func TestBuildUserMessageRootBaseOmitsCommitsAndFileList(t *testing.T) {
	env := promptEnv()
	env.RootBase = true
	msg := buildUserMessage(context.Background(), promptTask("a.go", "b.go", "c.go"), env, zap.NewNop())

	assert.NotContains(t, msg, "Commit messages")
	assert.NotContains(t, msg, "Changed files")
	assert.Contains(t, msg, "<rule>")
}

func TestBuildUserMessageRootBaseKeepsFocusList(t *testing.T) {
	env := promptEnv()
	env.RootBase = true
	msg := buildUserMessage(context.Background(), promptTask("a.go"), env, zap.NewNop())

	assert.NotContains(t, msg, "All changed files")
	assert.Contains(t, msg, "Focus on these files:\n\n- a.go")
}

func TestBuildUserMessageExcludesUnincludableDiffs(t *testing.T) {
	env := promptEnv()
	env.AllChangedFiles = []string{"a.go", "package-lock.json"}
	env.Diffs["package-lock.json"] = "huge lock diff"
	msg := buildUserMessage(context.Background(), promptTask("a.go", "package-lock.json"), env, zap.NewNop())

	assert.Contains(t, msg, "diff for a")
	assert.NotContains(t, msg, "huge lock diff")
}

func TestBuildUserMessageNoDiffsSection(t *testing.T) {
	env := promptEnv()
	env.Diffs = map[string]string{}
	msg := buildUserMessage(context.Background(), promptTask("a.go"), env, zap.NewNop())

	assert.NotContains(t, msg, "Here are diffs of focused files")
}

func TestMergeResourcesSortedDeduplicated(t *testing.T) {
	merged := mergeResources(
		[]string{"file://b.md", "file://a.md"},
		[]string{"file://a.md", "sh://git log"},
	)
	assert.Equal(t, []string{"file://a.md", "file://b.md", "sh://git log"}, merged)
}

func TestRunWorkerCompleted(t *testing.T) {
	client := &scriptedClient{responses: []llm.Message{
		llm.AssistantMessage("no violations found"),
	}}
	env := testEnv(client)
	env.Trace = true

	r := testRule("no-dup", []string{"**/*"}, nil, nil)
	result := runWorker(context.Background(), "7", Task{Rule: &r, Files: []string{"file.go"}}, env)

	assert.Equal(t, "7", result.WorkerID)
	assert.Equal(t, "no-dup", result.RuleName)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.True(t, result.Blocking)
	assert.NotEmpty(t, result.Messages, "trace captures the conversation")
	assert.NotEmpty(t, result.Tools, "trace captures the tool catalog")
	assert.GreaterOrEqual(t, result.Elapsed.Nanoseconds(), int64(0))
}

func TestRunWorkerFailedKeepsPartialState(t *testing.T) {
	client := &failingClient{err: assert.AnError}
	env := testEnv(client)
	env.Trace = true

	r := testRule("no-dup", []string{"**/*"}, nil, nil)
	result := runWorker(context.Background(), "0", Task{Rule: &r, Files: []string{"file.go"}}, env)

	assert.Equal(t, StatusFailed, result.Status)
	require.Error(t, result.Err)
	assert.NotEmpty(t, result.Messages, "failed tasks still carry their trace")
}

func TestRunWorkerRegistryHasFullCatalog(t *testing.T) {
	registry := buildRegistry(&violationSink{}, testEnv(nil))
	want := []string{"diff", "fetch", "glob", "grep", "ls", "lua", "read", "report", "sh", "think"}
	assert.Equal(t, want, registry.Names())
}

func TestSystemPromptMentionsWorkflow(t *testing.T) {
	for _, step := range []string{"think", "report", "diffs"} {
		if !strings.Contains(systemPrompt, step) {
			t.Errorf("system prompt missing %q", step)
		}
	}
}
