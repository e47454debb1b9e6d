package config

import (
	"testing"
	"time"
)

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "sometimes", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tail", func(c *Config) { c.DiagnosticTail = 0 }},
		{"zero grace", func(c *Config) { c.GracePeriod = 0 }},
		{"zero probe timeout", func(c *Config) { c.ProbeTimeout = 0 }},
		{"negative time limit", func(c *Config) { c.InvocationLimit = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("AVICORE_COLOR", "never")
	t.Setenv("AVICORE_GRACE_PERIOD", "2s")
	t.Setenv("AVICORE_DIAG_TAIL", "5")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if cfg.GracePeriod != 2*time.Second {
		t.Errorf("GracePeriod = %v, want 2s", cfg.GracePeriod)
	}
	if cfg.DiagnosticTail != 5 {
		t.Errorf("DiagnosticTail = %d, want 5", cfg.DiagnosticTail)
	}
}

func TestApplyEnv_BadDuration(t *testing.T) {
	t.Setenv("AVICORE_TIME_LIMIT", "soon")
	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv() = nil, want error for bad duration")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate: %v", err)
	}
}
