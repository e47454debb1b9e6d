package batch

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/backmassage/avicore/internal/engine"
	"github.com/backmassage/avicore/internal/job"
)

// Runner executes invocations strictly sequentially: exactly one engine
// subprocess in flight at any time. Concurrency buys nothing here — the
// engine already saturates the machine per invocation — and sequential
// execution keeps progress and cancellation semantics deterministic.
type Runner struct {
	Supervisor *engine.Supervisor
	Log        zerolog.Logger
	RunID      string
	DryRun     bool // Record invocations as skipped instead of launching.
	Backup     bool // Move originals aside after success.

	// OnProgress receives one event as each invocation starts and another
	// as it completes. Optional.
	OnProgress func(ProgressEvent)
}

// RunAll drives the invocation sequence to completion or cancellation and
// returns the final report. A zero-invocation input returns immediately
// with an all-zero report; that is a valid outcome, not an error.
//
// The batch continues past per-invocation failures (one bad file should not
// block the rest) but halts after a cancelled result: the in-flight
// invocation reaches its own terminal state via the supervisor's cleanup
// path, its result is recorded, and no further invocations start.
func (r *Runner) RunAll(ctx context.Context, invs []job.Invocation, force bool) Report {
	report := Report{RunID: r.RunID}

	total := len(invs)
	if total == 0 {
		r.Log.Info().Msg("no matching input files, nothing to do")
		return report
	}

	for i, inv := range invs {
		if ctx.Err() != nil {
			r.Log.Warn().Msg("interrupted, remaining invocations not started")
			break
		}

		name := filepath.Base(inv.InputPath)
		r.emit(ProgressEvent{Index: i + 1, Total: total, CurrentFile: name, Status: engine.StatusRunning})
		r.Log.Info().Int("index", i+1).Int("total", total).Str("file", name).
			Msgf("[%d/%d] %s", i+1, total, name)

		res := r.runOne(ctx, inv, force)
		report.add(res)
		r.emit(ProgressEvent{Index: i + 1, Total: total, CurrentFile: name, Status: res.Status})
		r.logResult(res)

		if res.Cancelled() {
			break
		}
	}

	r.Log.Info().
		Int("attempted", report.Attempted).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msgf("done: %d succeeded, %d failed, %d skipped", report.Succeeded, report.Failed, report.Skipped)
	return report
}

// runOne executes (or, for dry runs, previews) a single invocation.
func (r *Runner) runOne(ctx context.Context, inv job.Invocation, force bool) engine.Result {
	if r.DryRun {
		if inv.Err != nil {
			return engine.Result{Invocation: inv, Status: engine.StatusFailed,
				ErrorDetail: inv.Err.Error(), Err: inv.Err}
		}
		r.Log.Info().Msgf("[dry-run] %s", inv.Preview(r.Supervisor.Binary))
		return engine.Result{Invocation: inv, Status: engine.StatusSkipped}
	}

	res := r.Supervisor.Run(ctx, inv, force, func(line string) {
		r.Log.Debug().Str("file", filepath.Base(inv.InputPath)).Msg(line)
	})

	if res.Status == engine.StatusSuccess && r.Backup {
		if backupPath, err := backupOriginal(inv.InputPath); err != nil {
			r.Log.Warn().Err(err).Str("input", inv.InputPath).Msg("cannot back up original")
		} else {
			r.Log.Debug().Str("input", inv.InputPath).Str("backup", backupPath).Msg("original backed up")
		}
	}
	return res
}

func (r *Runner) logResult(res engine.Result) {
	switch res.Status {
	case engine.StatusSuccess:
		r.Log.Info().Int64("ms", res.DurationMillis).Str("output", res.OutputPath).Msg("ok")
	case engine.StatusSkipped:
	default:
		r.Log.Error().Msg(res.ErrorDetail)
	}
}

func (r *Runner) emit(ev ProgressEvent) {
	if r.OnProgress != nil {
		r.OnProgress(ev)
	}
}
