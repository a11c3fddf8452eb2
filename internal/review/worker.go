package review

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/gitctx"
	"github.com/wardenci/warden/internal/llm"
	"github.com/wardenci/warden/internal/tool"
)

const systemPrompt = "You are a code reviewer. Your task is to review code changes against a specific rule. " +
	"Focus only on the files provided and only check for violations of the given rule. " +
	"You can read related files if needed, but only report issues related to the provided files and rule. " +
	"\n\nWorkflow:\n" +
	"1. Review the provided diffs to understand what changed\n" +
	"2. Read other related diffs or files if needed for context\n" +
	"3. Use the 'think' tool to reason about whether the changes violate the rule\n" +
	"4. Use the 'report' tool to report all violations found, then exit without summary"

// workerEnv is the run-wide, read-only context shared by every worker: the
// changed-file list, pre-fetched diffs, and model settings. Workers never
// mutate it.
type workerEnv struct {
	Client          llm.Client
	Model           string
	Temperature     *float64
	MaxTokens       *int
	AllChangedFiles []string
	CommitSubjects  string
	RootBase        bool
	Diffs           map[string]string
	GlobalResources []string
	ShellAllowlist  []string
	Trace           bool
	Logger          *zap.Logger
}

// runWorker executes one task to a terminal state and returns its result.
// Cancellation produces a cancelled result carrying partial violations and
// trace; a provider failure produces a failed result the same way.
func runWorker(ctx context.Context, workerID string, task Task, env workerEnv) WorkerResult {
	start := time.Now()
	logger := env.Logger.With(zap.String("worker", workerID))
	logger.Info("reviewing files for rule",
		zap.String("rule", task.Rule.Name),
		zap.Int("files", len(task.Files)))

	sink := &violationSink{}
	registry := buildRegistry(sink, env)

	ag := newAgent(env.Client, registry, env.Model, env.Temperature, env.MaxTokens, logger)
	ag.append(llm.SystemMessage(systemPrompt))
	ag.append(llm.UserMessage(buildUserMessage(ctx, task, env, logger)))

	state, err := ag.run(ctx)
	elapsed := time.Since(start)

	result := WorkerResult{
		WorkerID:        workerID,
		RuleName:        task.Rule.Name,
		RuleInstruction: task.Rule.Instruction,
		Files:           task.Files,
		Blocking:        task.Rule.IsBlocking(),
		Violations:      sink.violations,
		Tip:             task.Rule.Tip,
		Elapsed:         elapsed,
	}
	if env.Trace {
		result.Messages = ag.history
		result.Tools = registry.Definitions()
	}

	switch {
	case err != nil:
		result.Status = StatusFailed
		result.Err = err
		logger.Error("task failed",
			zap.String("rule", task.Rule.Name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	case state == stateCancelled:
		result.Status = StatusCancelled
		logger.Info("cancelled, returning partial results",
			zap.String("rule", task.Rule.Name),
			zap.Duration("elapsed", elapsed))
	default:
		result.Status = StatusCompleted
		logger.Info("done reviewing rule",
			zap.String("rule", task.Rule.Name),
			zap.Duration("elapsed", elapsed))
	}
	return result
}

// buildRegistry assembles the per-task tool catalog: the generic tools plus
// the task-scoped report, think, and diff tools.
func buildRegistry(sink *violationSink, env workerEnv) *tool.Registry {
	r := tool.NewRegistry()
	r.Register(reportTool(sink))
	r.Register(thinkTool())
	r.Register(diffTool(env.Diffs))
	r.Register(tool.Read())
	r.Register(tool.Ls())
	r.Register(tool.Glob())
	r.Register(tool.Grep())
	r.Register(tool.Sh(env.ShellAllowlist))
	r.Register(tool.Fetch())
	r.Register(tool.Lua())
	return r
}

// buildUserMessage assembles the task prompt: commit subjects (omitted for a
// root baseline), the full changed-file list (only when the focus subset is
// strict), the focus list, the rule instruction, pre-fetched diffs for
// includable focus files, and supplementary resource text.
func buildUserMessage(ctx context.Context, task Task, env workerEnv, logger *zap.Logger) string {
	var sb strings.Builder

	if !env.RootBase && env.CommitSubjects != "" {
		fmt.Fprintf(&sb, "Commit messages:\n\n%s\n\n", env.CommitSubjects)
	}

	if slices.Equal(task.Files, env.AllChangedFiles) {
		if !env.RootBase {
			fmt.Fprintf(&sb, "Changed files:\n\n- %s\n\n", strings.Join(task.Files, "\n- "))
		}
	} else {
		if !env.RootBase {
			fmt.Fprintf(&sb, "All changed files:\n\n- %s\n\n", strings.Join(env.AllChangedFiles, "\n- "))
		}
		fmt.Fprintf(&sb, "Focus on these files:\n\n- %s\n\n", strings.Join(task.Files, "\n- "))
		sb.WriteString("Note: For most cases, only read the focused files.\n\n")
	}

	fmt.Fprintf(&sb, "Rule:\n\n<rule>\n\n%s\n\n</rule>\n\n", strings.TrimSpace(task.Rule.Instruction))

	if diffs := buildDiffsSection(task.Files, env.Diffs); diffs != "" {
		sb.WriteString(diffs)
	}

	resources := mergeResources(env.GlobalResources, task.Rule.Resources)
	if text := LoadResources(ctx, resources, logger); text != "" {
		sb.WriteString(text)
	}

	return sb.String()
}

// buildDiffsSection embeds the pre-fetched diffs for includable focus files,
// so the model rarely needs the diff tool at all.
func buildDiffsSection(files []string, diffs map[string]string) string {
	var sb strings.Builder
	for _, file := range files {
		if !gitctx.IncludableDiff(file) {
			continue
		}
		if d, ok := diffs[file]; ok && d != "" {
			fmt.Fprintf(&sb, "```diff\n%s\n```\n\n", d)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("Here are diffs of focused files (no need to call diff tool on them):\n\n%s\n\n",
		strings.TrimSpace(sb.String()))
}

// mergeResources combines global and rule resources, sorted and deduplicated
// so prompt assembly is deterministic.
func mergeResources(global, perRule []string) []string {
	merged := make([]string, 0, len(global)+len(perRule))
	merged = append(merged, global...)
	merged = append(merged, perRule...)
	slices.Sort(merged)
	return slices.Compact(merged)
}
