package job

import (
	"strings"

	"github.com/backmassage/avicore/internal/request"
)

// Invocation is one concrete planned execution of the engine. Args holds
// the full argument vector up to but excluding the output path; the
// supervisor appends the just-in-time resolved output path before launch.
// Invocations are immutable once built.
type Invocation struct {
	Args              []string
	InputPath         string
	PlannedOutputPath string
	Operation         request.Operation

	// Err is set when no argument mapping exists for this input (for
	// example a bulk pattern matched a file the operation cannot handle).
	// The supervisor turns it into a failed result without launching a
	// subprocess, so one bad file never aborts the batch.
	Err error
}

// Preview renders the full command line for dry-run display.
func (inv Invocation) Preview(binary string) string {
	parts := make([]string, 0, len(inv.Args)+2)
	parts = append(parts, binary)
	parts = append(parts, inv.Args...)
	parts = append(parts, inv.PlannedOutputPath)
	return strings.Join(parts, " ")
}
