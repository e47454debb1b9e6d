// Command avicore is a media toolkit CLI driving ffmpeg: convert, compress,
// and batch-process video, audio, and image files with collision-safe
// output naming and cleanup guarantees on failure or interrupt.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/backmassage/avicore/internal/batch"
	"github.com/backmassage/avicore/internal/config"
	"github.com/backmassage/avicore/internal/display"
	"github.com/backmassage/avicore/internal/engine"
	"github.com/backmassage/avicore/internal/job"
	"github.com/backmassage/avicore/internal/logging"
	"github.com/backmassage/avicore/internal/request"
	"github.com/backmassage/avicore/internal/term"
)

// version and commit are injected at build time via -ldflags. When built
// with plain "go build" these retain their defaults.
var (
	version = "2.0.0"
	commit  = "unknown"
)

// errRunFailed maps a report with failures onto a non-zero exit code
// without printing a redundant message (the runner already logged details).
var errRunFailed = errors.New("one or more invocations failed")

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	var root cli
	kctx := kong.Parse(&root,
		kong.Name("avicore"),
		kong.Description("Simple media toolkit driving ffmpeg."),
		kong.UsageOnError(),
	)

	cfg := config.DefaultConfig()
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "avicore: %v\n", err)
		return 1
	}
	root.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "avicore: %v\n", err)
		return 1
	}

	term.Configure(cfg.ColorMode)
	log, closer, err := logging.New(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "avicore: %v\n", err)
		return 1
	}
	if closer != nil {
		defer closer.Close()
	}

	// Phase 2: Signal handling — the first interrupt cancels the context so
	// the in-flight invocation runs its terminate → grace → kill → cleanup
	// sequence; a second interrupt force-quits after draining any partial
	// outputs still registered.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn().Msg("interrupt received, cancelling current invocation")
		cancel()
		<-sigCh
		engine.RemovePartials()
		os.Exit(130)
	}()

	// Phase 3: Integrity check — one version probe per process start. The
	// result is read-only from here on; commands short-circuit on it.
	avail := engine.Check(ctx, engine.Locate, cfg.ProbeTimeout)
	if avail.Available {
		log.Debug().Str("binary", avail.BinaryPath).Str("version", avail.Version).Msg("engine confirmed")
	}

	display.PrintBanner()

	app := &app{
		ctx:   ctx,
		cfg:   &cfg,
		log:   log,
		avail: avail,
		runID: uuid.NewString(),
	}

	// Phase 4: Dispatch the parsed command.
	if err := kctx.Run(app); err != nil {
		if !errors.Is(err, errRunFailed) {
			log.Error().Msg(err.Error())
		}
		return 1
	}
	return 0
}

// app carries the shared state every command needs.
type app struct {
	ctx   context.Context
	cfg   *config.Config
	log   zerolog.Logger
	avail engine.Availability
	runID string
}

// execute is the common path from a built JobRequest to an exit decision.
func (a *app) execute(req request.JobRequest) error {
	if err := a.avail.Err(); err != nil {
		return err
	}

	opts, err := request.ParseOptions(req.Options)
	if err != nil {
		return err
	}

	invs, err := job.Build(req)
	if err != nil {
		return err
	}

	sup := &engine.Supervisor{
		Binary:         a.avail.BinaryPath,
		GracePeriod:    a.cfg.GracePeriod,
		DiagnosticTail: a.cfg.DiagnosticTail,
		TimeLimit:      a.cfg.InvocationLimit,
		Verbose:        a.cfg.Verbose,
		ArtifactDir:    a.cfg.TempDir,
		RunID:          a.runID,
		Log:            a.log,
	}

	bar := display.NewBar(a.cfg.Verbose)
	runner := &batch.Runner{
		Supervisor: sup,
		Log:        a.log,
		RunID:      a.runID,
		DryRun:     a.cfg.DryRun,
		Backup:     opts.Backup || a.cfg.Backup,
		OnProgress: bar.Observe,
	}

	rep := runner.RunAll(a.ctx, invs, opts.Force)
	bar.Finish()
	summarize(a.log, rep)

	if rep.Failed > 0 {
		return errRunFailed
	}
	return nil
}

func summarize(log zerolog.Logger, rep batch.Report) {
	for _, res := range rep.Results {
		if res.Status != engine.StatusSuccess {
			continue
		}
		detail := display.FormatMillis(res.DurationMillis)
		if fi, err := os.Stat(res.OutputPath); err == nil {
			detail += ", " + display.FormatBytes(fi.Size())
		}
		log.Info().Msgf("  %s -> %s (%s)", res.Invocation.InputPath,
			res.OutputPath, detail)
	}
}
