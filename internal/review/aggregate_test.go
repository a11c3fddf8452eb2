package review

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenci/warden/internal/llm"
)

func resultWith(id, ruleName string, blocking bool, status Status, violations ...Violation) WorkerResult {
	return WorkerResult{
		WorkerID:   id,
		RuleName:   ruleName,
		Blocking:   blocking,
		Violations: violations,
		Status:     status,
	}
}

func TestAggregateGroupsByFileThenRule(t *testing.T) {
	results := []WorkerResult{
		resultWith("0", "dup", true, StatusCompleted,
			Violation{File: "a.go", Detail: "one", StartLine: 1, EndLine: 2},
			Violation{File: "b.go", Detail: "two", StartLine: 3, EndLine: 3},
		),
		resultWith("1", "magic", false, StatusCompleted,
			Violation{File: "a.go", Detail: "three", StartLine: 5, EndLine: 5},
		),
	}

	s := Aggregate(results, 0)
	require.Len(t, s.ViolationsByFile, 2)
	assert.Len(t, s.ViolationsByFile["a.go"]["dup"], 1)
	assert.Len(t, s.ViolationsByFile["a.go"]["magic"], 1)
	assert.Len(t, s.ViolationsByFile["b.go"]["dup"], 1)
}

func TestAggregateCommutative(t *testing.T) {
	results := []WorkerResult{
		resultWith("0", "dup", true, StatusCompleted, Violation{File: "a.go", Detail: "x", StartLine: 1, EndLine: 1}),
		resultWith("1", "magic", false, StatusCompleted, Violation{File: "b.go", Detail: "y", StartLine: 2, EndLine: 2}),
		resultWith("2", "creds", true, StatusFailed),
		resultWith("3", "dup", true, StatusCancelled, Violation{File: "c.go", Detail: "z", StartLine: 3, EndLine: 3}),
	}

	want := Aggregate(results, 1)
	for i := 0; i < 10; i++ {
		shuffled := append([]WorkerResult(nil), results...)
		rand.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Aggregate(shuffled, 1)
		assert.Equal(t, want.ViolationsByFile, got.ViolationsByFile)
		assert.Equal(t, want.BlockingViolated, got.BlockingViolated)
		assert.Equal(t, want.ExitCode(), got.ExitCode())
	}
}

func TestAggregateBlockingOnlyWhenViolated(t *testing.T) {
	results := []WorkerResult{
		resultWith("0", "clean-blocking", true, StatusCompleted),
		resultWith("1", "dirty-advisory", false, StatusCompleted,
			Violation{File: "a.go", Detail: "x", StartLine: 1, EndLine: 1}),
	}

	s := Aggregate(results, 0)
	assert.Empty(t, s.BlockingViolated)
	assert.Equal(t, 0, s.ExitCode())
}

func TestAggregateExitCodeBlockingViolation(t *testing.T) {
	results := []WorkerResult{
		resultWith("0", "dup", true, StatusCompleted,
			Violation{File: "a.go", Detail: "x", StartLine: 1, EndLine: 1}),
	}

	s := Aggregate(results, 0)
	assert.Equal(t, 1, s.ExitCode())
	assert.Equal(t, []string{"dup"}, s.BlockingRules())
}

func TestAggregateExitCodeTaskFailure(t *testing.T) {
	failed := resultWith("0", "dup", true, StatusFailed)
	failed.Err = errors.New("transport down")

	s := Aggregate([]WorkerResult{failed}, 0)
	assert.Equal(t, 1, s.ExitCode())
	assert.Equal(t, 1, s.Failed)
}

func TestAggregateCancelledOnlyExitsZero(t *testing.T) {
	results := []WorkerResult{
		resultWith("0", "dup", true, StatusCancelled),
	}

	s := Aggregate(results, 2)
	assert.Equal(t, 0, s.ExitCode())
	assert.True(t, s.Interrupted())
	assert.Equal(t, 2, s.NeverStarted)
}

func TestAggregateCancelledKeepsPartialViolations(t *testing.T) {
	results := []WorkerResult{
		resultWith("0", "dup", true, StatusCancelled,
			Violation{File: "a.go", Detail: "partial", StartLine: 1, EndLine: 1}),
	}

	s := Aggregate(results, 0)
	assert.Len(t, s.ViolationsByFile["a.go"]["dup"], 1)
	assert.Equal(t, 1, s.ExitCode(), "partial blocking violations still fail the run")
}

func TestAggregateTipsAndTraces(t *testing.T) {
	traced := resultWith("1", "dup", true, StatusCompleted)
	traced.Tip = "extract a helper"
	traced.Messages = []llm.Message{llm.UserMessage("hi")}
	other := resultWith("0", "magic", false, StatusCompleted)
	other.Messages = []llm.Message{llm.UserMessage("yo")}

	s := Aggregate([]WorkerResult{traced, other}, 0)
	assert.Equal(t, "extract a helper", s.TipsByRule["dup"])
	require.Len(t, s.Traces, 2)
	assert.Equal(t, "0", s.Traces[0].WorkerID, "traces sorted by worker id")
	assert.Equal(t, "1", s.Traces[1].WorkerID)
}
