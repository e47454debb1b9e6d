// Package engine locates and supervises the external media engine (ffmpeg):
// startup integrity checks, subprocess execution with streamed diagnostics,
// and the cleanup guarantees around partial output files.
package engine

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Locator resolves a runnable engine binary path. It is a function type so
// tests can substitute a fake engine.
type Locator func() (string, error)

// ErrEngineNotFound is returned by [Locate] when no engine binary could be
// resolved.
var ErrEngineNotFound = errors.New("ffmpeg not found")

// Locate resolves the engine binary: a bundled ffmpeg sitting next to the
// host executable (or in its bin/ subdirectory) takes precedence, then the
// system search path.
func Locate() (string, error) {
	name := "ffmpeg"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		for _, cand := range []string{
			filepath.Join(dir, name),
			filepath.Join(dir, "bin", name),
		} {
			if isRunnable(cand) {
				return cand, nil
			}
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	return "", ErrEngineNotFound
}

// isRunnable reports whether path is a regular file with an execute bit set.
func isRunnable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return fi.Mode()&0o111 != 0
}
