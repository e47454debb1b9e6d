// Package batch drives an ordered sequence of engine invocations through
// the process supervisor, one subprocess at a time, and aggregates the run
// report.
package batch

import "github.com/backmassage/avicore/internal/engine"

// Report accumulates invocation results, in the exact order the
// invocations were presented, and the aggregate counters derived from them.
// It always holds Attempted == Succeeded + Failed + Skipped.
type Report struct {
	RunID     string
	Results   []engine.Result
	Attempted int
	Succeeded int
	Failed    int
	Skipped   int
}

// add appends a terminal result and updates the counters.
func (r *Report) add(res engine.Result) {
	r.Results = append(r.Results, res)
	r.Attempted++
	switch res.Status {
	case engine.StatusSuccess:
		r.Succeeded++
	case engine.StatusSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}

// ProgressEvent is the structured per-invocation progress notification
// handed to the rendering collaborator. Rendering (bars, percentages,
// colors) is the collaborator's concern.
type ProgressEvent struct {
	Index       int // 1-based position in the run.
	Total       int
	CurrentFile string
	Status      engine.Status
}
