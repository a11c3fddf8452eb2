// Package gitctx extracts the change-set under review from git.
package gitctx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// gitEmptyTree is the well-known hash of git's empty tree, used to diff the
// whole repository when reviewing from the root baseline.
const gitEmptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Base identifies what the review compares against.
type Base struct {
	// Root reviews every tracked file rather than a diff.
	Root bool
	// Ref is the commit-ish to diff against when Root is false.
	Ref string
}

// ResolveBase parses the --base argument.
//
//   - "": auto-detect, HEAD when uncommitted changes exist, otherwise "^"
//   - "ROOT": the whole repository
//   - leading "^" or "~": relative to HEAD (e.g. "^", "~2")
//   - anything else: a commit hash or reference
func ResolveBase(ctx context.Context, spec string) Base {
	if spec == "" {
		if hasUncommittedChanges(ctx) {
			spec = "HEAD"
		} else {
			spec = "^"
		}
	}
	switch {
	case spec == "ROOT":
		return Base{Root: true}
	case strings.HasPrefix(spec, "^") || strings.HasPrefix(spec, "~"):
		return Base{Ref: "HEAD" + spec}
	default:
		return Base{Ref: spec}
	}
}

func hasUncommittedChanges(ctx context.Context) bool {
	// Exit status 1 means the working tree differs from HEAD.
	err := exec.CommandContext(ctx, "git", "diff", "--quiet", "HEAD").Run()
	return err != nil
}

func (b Base) diffBase() string {
	if b.Root {
		return gitEmptyTree
	}
	return b.Ref
}

// ChangedFiles lists the paths under review: every tracked file for a root
// baseline, otherwise the files that differ from the base.
func ChangedFiles(ctx context.Context, base Base) ([]string, error) {
	var out string
	var err error
	if base.Root {
		out, err = gitOutput(ctx, "ls-files")
	} else {
		out, err = gitOutput(ctx, "diff", "--name-only", base.Ref)
	}
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// Diffs returns per-file diff text against the base. Files with empty diffs
// are omitted. Individual diff failures are skipped rather than failing the
// run; a missing diff only costs the model context.
func Diffs(ctx context.Context, base Base, files []string) map[string]string {
	diffs := make(map[string]string, len(files))
	for _, file := range files {
		out, err := gitOutput(ctx, "diff", base.diffBase(), "--", file)
		if err != nil || out == "" {
			continue
		}
		diffs[file] = out
	}
	return diffs
}

// CommitSubjects returns the subject lines between the base and HEAD,
// newest first. Empty for a root baseline.
func CommitSubjects(ctx context.Context, base Base) (string, error) {
	if base.Root {
		return "", nil
	}
	out, err := gitOutput(ctx, "log", "--format=%s", fmt.Sprintf("%s..HEAD", base.Ref))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func gitOutput(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}
