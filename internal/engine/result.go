package engine

import (
	"errors"

	"github.com/backmassage/avicore/internal/job"
)

// Status is the terminal state of one invocation.
type Status string

const (
	StatusRunning Status = "running" // Progress-event only; never recorded in a result.
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Sentinel errors carried by failed results.
var (
	ErrInvocationFailed = errors.New("engine invocation failed")
	ErrCancelled        = errors.New("invocation cancelled")
)

// Result is the terminal record of one invocation. It is never mutated
// after the supervisor returns it.
type Result struct {
	Invocation     job.Invocation
	Status         Status
	OutputPath     string // Resolved output path; empty if resolution never happened.
	ErrorDetail    string // Non-empty for every failed result.
	LogArtifact    string // Verbose failure log path, when one was written.
	DurationMillis int64
	Err            error // Programmatic cause; wraps one of the sentinels above.
}

// Cancelled reports whether the result was produced by user interruption or
// a wall-clock limit expiry.
func (r Result) Cancelled() bool {
	return errors.Is(r.Err, ErrCancelled)
}
