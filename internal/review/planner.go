package review

import (
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/rule"
)

// Plan turns rules and changed files into an ordered task list. Rule order
// is preserved; within a rule, chunks keep file order. A rule whose scope
// matches no files contributes no tasks.
func Plan(rules []rule.Rule, changedFiles []string, globalMaxFiles int, logger *zap.Logger) []Task {
	var tasks []Task
	for i := range rules {
		r := &rules[i]
		matched := filterByScope(r, changedFiles, logger)
		if len(matched) == 0 {
			logger.Debug("rule matched no files", zap.String("rule", r.Name))
			continue
		}
		max := r.EffectiveMaxFiles(globalMaxFiles)
		for _, chunk := range splitFiles(matched, max) {
			tasks = append(tasks, Task{Rule: r, Files: chunk})
		}
	}
	return tasks
}

// filterByScope returns the files matching any scope pattern and no exclude
// pattern. Invalid patterns are logged and skipped, never fatal.
func filterByScope(r *rule.Rule, files []string, logger *zap.Logger) []string {
	scope := validPatterns(r.Scope, r.Name, "scope", logger)
	exclude := validPatterns(r.Exclude, r.Name, "exclude", logger)

	var matched []string
	for _, f := range files {
		if matchesAny(scope, f) && !matchesAny(exclude, f) {
			matched = append(matched, f)
		}
	}
	return matched
}

func validPatterns(patterns []string, ruleName, kind string, logger *zap.Logger) []string {
	valid := patterns[:0:0]
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			logger.Warn("invalid glob pattern, skipping",
				zap.String("rule", ruleName),
				zap.String("kind", kind),
				zap.String("pattern", p))
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

func matchesAny(patterns []string, file string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, file); ok {
			return true
		}
	}
	return false
}

// splitFiles partitions files into balanced chunks: ceil(total/maxPerTask)
// chunks whose sizes differ by at most one, so 13 files with a max of 5
// become [5 4 4] rather than [5 5 3].
func splitFiles(files []string, maxPerTask int) [][]string {
	total := len(files)
	if total == 0 {
		return nil
	}
	if maxPerTask < 1 {
		maxPerTask = 1
	}

	chunks := (total + maxPerTask - 1) / maxPerTask
	base := total / chunks
	extra := total % chunks // the first extra chunks get one more file

	out := make([][]string, 0, chunks)
	start := 0
	for i := 0; i < chunks; i++ {
		size := base
		if i < extra {
			size++
		}
		out = append(out, files[start:start+size])
		start += size
	}
	return out
}
