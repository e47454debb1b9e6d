package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/avicore/internal/config"
)

func TestNew_NoLogFile(t *testing.T) {
	cfg := config.DefaultConfig()
	log, closer, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if closer != nil {
		t.Error("closer should be nil when no log file is configured")
	}
	log.Info().Msg("smoke")
}

func TestNew_LogFileWritten(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(dir, "logs", "avicore.log")

	log, closer, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if closer == nil {
		t.Fatal("closer should be non-nil when a log file is configured")
	}
	log.Info().Str("input", "movie.mkv").Msg("converted")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "movie.mkv") {
		t.Errorf("log file missing entry, got: %s", data)
	}
}

func TestNew_VerboseLowersLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Verbose = true
	log, _, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.GetLevel().String() != "debug" {
		t.Errorf("level = %s, want debug", log.GetLevel())
	}
}
