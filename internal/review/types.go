// Package review implements the review engine: task planning, the per-task
// agent loop, the worker pool scheduler, and result aggregation.
package review

import (
	"time"

	"github.com/wardenci/warden/internal/llm"
	"github.com/wardenci/warden/internal/rule"
)

// Task is one unit of review work: a rule applied to an ordered, non-empty
// subset of the changed files. Created by the planner, consumed by exactly
// one worker.
type Task struct {
	Rule  *rule.Rule
	Files []string
}

// Violation is a reported rule breach with file and line-range location.
// Lines are 1-indexed and StartLine <= EndLine.
type Violation struct {
	File      string `json:"file"`
	Detail    string `json:"detail"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Status is the terminal outcome of one started task.
type Status string

const (
	// StatusCompleted means the model finished without tool calls.
	StatusCompleted Status = "completed"
	// StatusCancelled means shutdown interrupted the task; partial
	// violations and trace are still carried.
	StatusCancelled Status = "cancelled"
	// StatusFailed means a task-level error, such as a provider transport
	// failure. Recorded per task, never fatal to the run.
	StatusFailed Status = "failed"
)

// WorkerResult is the outcome of one started task.
type WorkerResult struct {
	WorkerID        string
	RuleName        string
	RuleInstruction string
	Files           []string
	Blocking        bool
	Violations      []Violation
	// Messages and Tools are populated only when tracing is enabled.
	Messages []llm.Message
	Tools    []llm.ToolDefinition
	Tip      string
	Elapsed  time.Duration
	Status   Status
	// Err is set when Status is StatusFailed.
	Err error
}

// TraceEntry is one task's record for the execution trace artifact.
type TraceEntry struct {
	WorkerID        string               `json:"worker_id"`
	RuleName        string               `json:"rule_name"`
	RuleInstruction string               `json:"rule_instruction"`
	Files           []string             `json:"files"`
	ElapsedSecs     float64              `json:"elapsed_secs"`
	Status          Status               `json:"status"`
	Tools           []llm.ToolDefinition `json:"tools"`
	Messages        []llm.Message        `json:"messages"`
}
