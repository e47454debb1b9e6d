package engine

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrEngineUnavailable is the startup failure: no confirmed engine, so no
// invocation may proceed.
var ErrEngineUnavailable = errors.New("engine unavailable")

// Availability is the outcome of the startup integrity check. It is
// computed once per process start and read-only afterwards.
type Availability struct {
	Available  bool
	BinaryPath string
	Version    string
	Reason     string // Human-actionable failure reason when unavailable.
}

// Err returns nil when the engine is available, otherwise an error wrapping
// [ErrEngineUnavailable] with the failure reason.
func (a Availability) Err() error {
	if a.Available {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrEngineUnavailable, a.Reason)
}

// Check resolves the engine binary via locate and probes it with -version
// under probeTimeout. Run once per process start; a resolved binary that
// fails or hangs on the probe is reported unavailable with a diagnostic
// reason.
func Check(ctx context.Context, locate Locator, probeTimeout time.Duration) Availability {
	path, err := locate()
	if err != nil {
		return Availability{
			Reason: fmt.Sprintf("%v; install ffmpeg or place the binary next to the avicore executable", err),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "-version")
	// Without a WaitDelay, a grandchild that inherits the probe's stdout
	// pipe keeps Output blocked past the deadline after the probe is killed.
	cmd.WaitDelay = probeTimeout
	out, err := cmd.Output()
	if err != nil {
		reason := fmt.Sprintf("version probe of %s failed: %v", path, err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = fmt.Sprintf("version probe of %s timed out after %s", path, probeTimeout)
		}
		return Availability{BinaryPath: path, Reason: reason}
	}

	version := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(version, '\n'); idx > 0 {
		version = strings.TrimSpace(version[:idx])
	}

	return Availability{
		Available:  true,
		BinaryPath: path,
		Version:    version,
	}
}
