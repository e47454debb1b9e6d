package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/avicore/internal/job"
	"github.com/backmassage/avicore/internal/pathsafe"
)

// Supervisor launches one engine invocation at a time, streams its
// diagnostic output, detects success or failure, and guarantees that no
// partial output file survives a failed or cancelled invocation.
type Supervisor struct {
	Binary         string        // Engine binary path from the integrity check.
	GracePeriod    time.Duration // Terminate → force-kill grace period.
	DiagnosticTail int           // Stderr lines kept in the failure detail.
	TimeLimit      time.Duration // Optional wall clock per invocation; 0 = none.
	Verbose        bool          // Persist full stderr to a log artifact on failure.
	ArtifactDir    string        // Directory for verbose failure artifacts.
	RunID          string        // Stamped into the artifact filename.
	Log            zerolog.Logger
}

// Run executes inv and returns its terminal result.
//
// The output path is resolved immediately before launch (the filesystem may
// have changed since planning). The calling goroutine blocks until the
// child exits while its stderr is drained concurrently, line by line, into
// onProgressLine and an internal buffer. On cancellation (user interrupt
// or wall-clock expiry) the child receives a graceful termination request
// and is force-killed after the grace period. Cleanup then removes the
// output file, unless it already existed before launch: a forced overwrite
// target or an in-place output is the user's data, not a partial, and
// stays on disk whatever the engine did to it.
func (s *Supervisor) Run(ctx context.Context, inv job.Invocation, force bool, onProgressLine func(string)) Result {
	if s.Binary == "" {
		err := fmt.Errorf("%w: no engine binary confirmed", ErrEngineUnavailable)
		return failedResult(inv, "", err.Error(), err, 0)
	}

	// Build-time mapping problems surface here as a failed result for this
	// invocation only, without ever launching a subprocess.
	if inv.Err != nil {
		return failedResult(inv, "", inv.Err.Error(), inv.Err, 0)
	}

	resolved, err := pathsafe.Resolve(inv.PlannedOutputPath, force)
	if err != nil {
		return failedResult(inv, "", err.Error(), err, 0)
	}

	// A resolved path that already exists (forced overwrite, or mute /
	// compress writing in place) is existing user data; cleanup must not
	// delete it.
	_, statErr := os.Lstat(resolved)
	preExisted := statErr == nil

	runCtx := ctx
	if s.TimeLimit > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.TimeLimit)
		defer cancel()
	}

	args := append(slices.Clone(inv.Args), resolved)
	cmd := exec.CommandContext(runCtx, s.Binary, args...)
	cmd.Cancel = func() error {
		// Graceful first: let the engine flush and unwind. WaitDelay
		// force-kills if it ignores the request.
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	grace := s.GracePeriod
	if grace <= 0 {
		grace = 5 * time.Second
	}
	cmd.WaitDelay = grace

	// A writer (not StderrPipe) so exec's own copy goroutine owns the child
	// pipe: Wait then returns only after every buffered line has been
	// forwarded, and WaitDelay still unblocks it if a grandchild keeps the
	// pipe open past the child's exit.
	stderrRead, stderrWrite := io.Pipe()
	cmd.Stderr = stderrWrite

	s.Log.Debug().Str("input", inv.InputPath).Str("output", resolved).
		Strs("args", args).Msg("launching engine")

	// Register before launch so a force-quit arriving mid-start still sees
	// the path; the deferred release covers the start-error path too.
	release := func() {}
	if !preExisted {
		release = trackPartial(resolved)
	}
	defer release()

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return failedResult(inv, resolved, fmt.Sprintf("cannot launch engine: %v", err),
			fmt.Errorf("%w: %v", ErrInvocationFailed, err), 0)
	}

	// Drain stderr concurrently so the child never blocks on a full pipe.
	// WaitDelay lets Wait force-close the pipe if something inherited it
	// and keeps it open past the child's exit.
	var lines []string
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		scanner := bufio.NewScanner(stderrRead)
		scanner.Buffer(make([]byte, 0, 64*1024), 512*1024)
		for scanner.Scan() {
			line := scanner.Text()
			lines = append(lines, line)
			if onProgressLine != nil {
				onProgressLine(line)
			}
		}
	}()

	waitErr := cmd.Wait()
	stderrWrite.Close()
	<-drained
	elapsed := time.Since(start).Milliseconds()

	if waitErr == nil {
		return Result{
			Invocation:     inv,
			Status:         StatusSuccess,
			OutputPath:     resolved,
			DurationMillis: elapsed,
		}
	}

	if runCtx.Err() != nil {
		if !preExisted {
			os.Remove(resolved)
		}
		detail := "cancelled by interrupt"
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			detail = fmt.Sprintf("cancelled: wall-clock limit of %s exceeded", s.TimeLimit)
		}
		return failedResult(inv, resolved, detail,
			fmt.Errorf("%w: %s", ErrCancelled, detail), elapsed)
	}

	// The child itself reported failure; anything it wrote at the resolved
	// path is incomplete by its own account. A path that predates the
	// launch stays put regardless.
	if !preExisted {
		os.Remove(resolved)
	}

	detail := s.failureDetail(waitErr, lines)
	res := failedResult(inv, resolved, detail,
		fmt.Errorf("%w: %v", ErrInvocationFailed, waitErr), elapsed)

	if s.Verbose {
		artifact, aerr := s.writeArtifact(inv, args, lines)
		if aerr != nil {
			s.Log.Warn().Err(aerr).Msg("cannot write failure log artifact")
		} else {
			res.LogArtifact = artifact
			res.ErrorDetail += "\nfull engine output: " + artifact
		}
	}
	return res
}

// failureDetail composes the error detail from the exit error, a classified
// hint when one of the known stderr patterns matches, and the last
// DiagnosticTail buffered lines.
func (s *Supervisor) failureDetail(waitErr error, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "engine failed: %v", waitErr)

	all := strings.Join(lines, "\n")
	if hint := Diagnose(all); hint != "" {
		b.WriteString(" (" + hint + ")")
	}

	tail := lines
	if s.DiagnosticTail > 0 && len(tail) > s.DiagnosticTail {
		tail = tail[len(tail)-s.DiagnosticTail:]
	}
	for _, line := range tail {
		b.WriteString("\n  " + line)
	}
	return b.String()
}

// writeArtifact appends the full diagnostic buffer for a failed invocation
// to the per-run log artifact, one engine-output line per line, with a
// header identifying the invocation. The file is keyed by run ID, so
// multiple failures in one run share an artifact and concurrent runs never
// clobber each other.
func (s *Supervisor) writeArtifact(inv job.Invocation, args, lines []string) (string, error) {
	path := filepath.Join(s.ArtifactDir, "avicore-"+s.RunID+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "==== failed invocation: %s ====\n", inv.InputPath)
	fmt.Fprintf(&b, "args: %s\n", strings.Join(args, " "))
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return "", err
	}
	return path, nil
}

func failedResult(inv job.Invocation, output, detail string, err error, durationMillis int64) Result {
	return Result{
		Invocation:     inv,
		Status:         StatusFailed,
		OutputPath:     output,
		ErrorDetail:    detail,
		DurationMillis: durationMillis,
		Err:            err,
	}
}
