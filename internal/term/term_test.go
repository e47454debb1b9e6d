package term

import (
	"os"
	"testing"

	"github.com/backmassage/avicore/internal/config"
)

func TestConfigure_AlwaysAndNever(t *testing.T) {
	Configure(config.ColorAlways)
	if !Enabled() || Green == "" {
		t.Error("ColorAlways should enable ANSI codes")
	}

	Configure(config.ColorNever)
	if Enabled() || Green != "" || NC != "" {
		t.Error("ColorNever should clear all ANSI codes")
	}
}

func TestConfigure_AutoWithoutTTY(t *testing.T) {
	// Test processes have no TTY on stderr, so auto resolves to off.
	Configure(config.ColorAuto)
	if Enabled() {
		t.Skip("stderr unexpectedly is a terminal")
	}
	if Red != "" {
		t.Error("auto without a TTY should disable colors")
	}
}

func TestWidth_FallbackWithoutTTY(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "plain")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := Width(f, 72); got != 72 {
		t.Errorf("Width = %d, want fallback 72", got)
	}
	if got := Width(nil, 80); got != 80 {
		t.Errorf("Width(nil) = %d, want fallback 80", got)
	}
}
