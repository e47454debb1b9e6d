// Package logging constructs the process-wide zerolog logger: a colored
// console stream on stderr plus an optional plain JSON file sink.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/avicore/internal/config"
	"github.com/backmassage/avicore/internal/term"
)

// New builds the logger from cfg. Colors follow the state set by
// [term.Configure]; call that first. The returned closer is non-nil only
// when a log file was opened and must be closed by the caller on shutdown.
func New(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !term.Enabled(),
		TimeFormat: "15:04:05",
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	if cfg.LogFile == "" {
		log := zerolog.New(console).Level(level).With().Timestamp().Logger()
		return log, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	log := zerolog.New(zerolog.MultiLevelWriter(console, f)).
		Level(level).With().Timestamp().Logger()
	return log, f, nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
