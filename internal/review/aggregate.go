package review

import "sort"

// Summary is the merged outcome of a run. Grouping is order-independent:
// the same results in any completion order produce the same summary.
type Summary struct {
	// ViolationsByFile groups violations by file path, then rule name.
	ViolationsByFile map[string]map[string][]Violation
	// TipsByRule carries each rule's remediation tip, when set.
	TipsByRule map[string]string
	// BlockingViolated names the blocking rules that produced violations.
	BlockingViolated map[string]bool
	// Traces holds per-task records when tracing was enabled.
	Traces []TraceEntry
	// Completed, Cancelled, and Failed count started tasks by outcome.
	Completed int
	Cancelled int
	Failed    int
	// NeverStarted counts tasks shutdown prevented from starting.
	NeverStarted int
}

// Aggregate merges the collected worker results. Cancelled and failed tasks
// still contribute whatever violations and trace they accumulated.
func Aggregate(results []WorkerResult, neverStarted int) Summary {
	s := Summary{
		ViolationsByFile: make(map[string]map[string][]Violation),
		TipsByRule:       make(map[string]string),
		BlockingViolated: make(map[string]bool),
		NeverStarted:     neverStarted,
	}

	for _, r := range results {
		switch r.Status {
		case StatusCancelled:
			s.Cancelled++
		case StatusFailed:
			s.Failed++
		default:
			s.Completed++
		}

		for _, v := range r.Violations {
			byRule, ok := s.ViolationsByFile[v.File]
			if !ok {
				byRule = make(map[string][]Violation)
				s.ViolationsByFile[v.File] = byRule
			}
			byRule[r.RuleName] = append(byRule[r.RuleName], v)
		}
		if len(r.Violations) > 0 && r.Blocking {
			s.BlockingViolated[r.RuleName] = true
		}
		if r.Tip != "" {
			s.TipsByRule[r.RuleName] = r.Tip
		}
		if r.Messages != nil {
			s.Traces = append(s.Traces, TraceEntry{
				WorkerID:        r.WorkerID,
				RuleName:        r.RuleName,
				RuleInstruction: r.RuleInstruction,
				Files:           r.Files,
				ElapsedSecs:     r.Elapsed.Seconds(),
				Status:          r.Status,
				Tools:           r.Tools,
				Messages:        r.Messages,
			})
		}
	}

	sort.Slice(s.Traces, func(i, j int) bool {
		return s.Traces[i].WorkerID < s.Traces[j].WorkerID
	})
	return s
}

// Interrupted reports whether the run was cut short before every planned
// task completed.
func (s Summary) Interrupted() bool {
	return s.Cancelled > 0 || s.NeverStarted > 0
}

// ExitCode implements the exit policy: 1 when any blocking rule has
// violations or any task failed, 0 otherwise. The report is always rendered
// before this decision is surfaced.
func (s Summary) ExitCode() int {
	if len(s.BlockingViolated) > 0 || s.Failed > 0 {
		return 1
	}
	return 0
}

// BlockingRules returns the sorted names of blocking rules with violations.
func (s Summary) BlockingRules() []string {
	names := make([]string, 0, len(s.BlockingViolated))
	for name := range s.BlockingViolated {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
