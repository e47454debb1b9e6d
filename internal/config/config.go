// Package config holds runtime configuration: defaults, environment
// overrides, and validation. Per-job settings (force, fast, quality) travel
// in the JobRequest instead; Config covers only process-wide knobs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all process-wide settings. It is populated by
// [DefaultConfig], optionally overridden by [ApplyEnv], and then mutated by
// the CLI layer before being passed (by pointer) to packages that need it.
type Config struct {
	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional plain log file path.

	// Process supervision.
	DiagnosticTail  int           // Stderr lines kept in failure detail. Default: 20.
	GracePeriod     time.Duration // Terminate → kill grace period. Default: 5s.
	ProbeTimeout    time.Duration // Engine version probe timeout. Default: 10s.
	InvocationLimit time.Duration // Optional per-invocation wall clock. 0 = none.

	// Filesystem.
	TempDir string // Log artifact directory. Default: os.TempDir().

	// Behavior flags.
	DryRun bool // Preview engine commands without executing.
	Backup bool // Move originals to ./backup after success.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// avicore behavior where one existed.
func DefaultConfig() Config {
	return Config{
		ColorMode:      ColorAuto,
		DiagnosticTail: 20,
		GracePeriod:    5 * time.Second,
		ProbeTimeout:   10 * time.Second,
		TempDir:        os.TempDir(),
	}
}

// ApplyEnv loads an optional .env file and applies AVICORE_* environment
// overrides on top of the current values. Unset variables leave the
// corresponding field untouched.
func ApplyEnv(cfg *Config) error {
	// Missing .env is not an error; explicit env vars still apply.
	_ = godotenv.Load()

	if v := os.Getenv("AVICORE_COLOR"); v != "" {
		cfg.ColorMode = ColorMode(v)
	}
	if v := os.Getenv("AVICORE_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("AVICORE_TEMP_DIR"); v != "" {
		cfg.TempDir = v
	}
	if v := os.Getenv("AVICORE_DIAG_TAIL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AVICORE_DIAG_TAIL: %w", err)
		}
		cfg.DiagnosticTail = n
	}
	for _, d := range []struct {
		name  string
		field *time.Duration
	}{
		{"AVICORE_GRACE_PERIOD", &cfg.GracePeriod},
		{"AVICORE_PROBE_TIMEOUT", &cfg.ProbeTimeout},
		{"AVICORE_TIME_LIMIT", &cfg.InvocationLimit},
	} {
		v := os.Getenv(d.name)
		if v == "" {
			continue
		}
		dur, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.field = dur
	}
	return nil
}

// Validate checks enum fields and numeric ranges. Called once after env and
// CLI overrides are applied.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always, or never)", c.ColorMode)
	}
	if c.DiagnosticTail < 1 {
		return errors.New("diagnostic tail must be at least 1 line")
	}
	if c.GracePeriod <= 0 {
		return errors.New("grace period must be positive")
	}
	if c.ProbeTimeout <= 0 {
		return errors.New("probe timeout must be positive")
	}
	if c.InvocationLimit < 0 {
		return errors.New("invocation time limit cannot be negative")
	}
	return nil
}
