package review

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/config"
	"github.com/wardenci/warden/internal/gitctx"
	"github.com/wardenci/warden/internal/llm"
)

// Options configures one review run.
type Options struct {
	Config config.Config
	Client llm.Client
	// Base is the --base argument; empty means auto-detect.
	Base string
	// DryRun plans tasks and logs them without executing workers.
	DryRun bool
	// Trace captures full conversation histories for every task.
	Trace  bool
	Logger *zap.Logger
}

// RunResult is the outcome of Run: the planned tasks and, unless dry-run,
// the aggregated summary.
type RunResult struct {
	Tasks   []Task
	Summary Summary
	DryRun  bool
}

// Run executes one review end to end: resolve the base, enumerate changes,
// plan tasks, schedule workers, and aggregate results. A signal-cancelled
// ctx stops new task starts and cancels in-flight work cooperatively.
func Run(ctx context.Context, opts Options) (*RunResult, error) {
	cfg := opts.Config
	logger := opts.Logger

	base := gitctx.ResolveBase(ctx, opts.Base)
	logger.Debug("resolved base", zap.Bool("root", base.Root), zap.String("ref", base.Ref))

	changed, err := gitctx.ChangedFiles(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}
	logger.Info("found changed files", zap.Int("count", len(changed)))

	diffs := gitctx.Diffs(ctx, base, changed)

	commits, err := gitctx.CommitSubjects(ctx, base)
	if err != nil {
		logger.Warn("failed to read commit subjects", zap.Error(err))
	}

	tasks := Plan(cfg.Rules, changed, cfg.Review.MaxFilesPerTask, logger)
	logger.Info("created tasks", zap.Int("count", len(tasks)))

	if opts.DryRun {
		for i, t := range tasks {
			logger.Info("planned task",
				zap.Int("task", i),
				zap.String("rule", t.Rule.Name),
				zap.Strings("files", t.Files))
		}
		return &RunResult{Tasks: tasks, DryRun: true}, nil
	}

	flag := &ShutdownFlag{}
	flag.WatchContext(ctx, logger)

	env := workerEnv{
		Client:          opts.Client,
		Model:           cfg.LLM.Model,
		AllChangedFiles: changed,
		CommitSubjects:  commits,
		RootBase:        base.Root,
		Diffs:           diffs,
		GlobalResources: cfg.Review.Resources,
		ShellAllowlist:  cfg.Review.ShellAllowlist,
		Trace:           opts.Trace,
		Logger:          logger,
	}
	if cfg.LLM.Temperature > 0 {
		t := cfg.LLM.Temperature
		env.Temperature = &t
	}
	if cfg.LLM.MaxTokens > 0 {
		m := cfg.LLM.MaxTokens
		env.MaxTokens = &m
	}

	results, neverStarted := schedule(ctx, tasks, cfg.Review.MaxParallelWorkers, flag, env)
	summary := Aggregate(results, neverStarted)

	if summary.Interrupted() {
		logger.Warn("review interrupted",
			zap.Int("completed", summary.Completed),
			zap.Int("failed", summary.Failed),
			zap.Int("cancelled", summary.Cancelled),
			zap.Int("never_started", summary.NeverStarted))
	} else {
		logger.Info("review complete",
			zap.Int("completed", summary.Completed),
			zap.Int("failed", summary.Failed))
	}

	return &RunResult{Tasks: tasks, Summary: summary}, nil
}
