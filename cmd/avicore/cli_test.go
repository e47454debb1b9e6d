package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/avicore/internal/request"
)

func TestPickOp(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		inputs []string
		want   request.Operation
	}{
		{"single existing file", []string{file}, request.OpConvert},
		{"glob pattern", []string{filepath.Join(dir, "*.mkv")}, request.OpBulkConvert},
		{"multiple inputs", []string{file, file}, request.OpBulkConvert},
		{"missing file", []string{filepath.Join(dir, "nope.mkv")}, request.OpBulkConvert},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickOp(tt.inputs, request.OpConvert, request.OpBulkConvert)
			if got != tt.want {
				t.Errorf("pickOp(%v) = %s, want %s", tt.inputs, got, tt.want)
			}
		})
	}
}

func TestOptionBag(t *testing.T) {
	bag := optionBag(map[string]bool{"force": true, "fast": false}, 70)
	if bag["force"] != "true" {
		t.Errorf("force missing: %v", bag)
	}
	if _, ok := bag["fast"]; ok {
		t.Errorf("unset flags must not appear: %v", bag)
	}
	if bag["quality"] != "70" {
		t.Errorf("quality = %q, want 70", bag["quality"])
	}

	if got := optionBag(map[string]bool{"force": false}, -1); got != nil {
		t.Errorf("empty bag should be nil, got %v", got)
	}
}
