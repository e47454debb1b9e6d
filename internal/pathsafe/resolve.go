// Package pathsafe computes safe output paths: it detects collisions with
// existing files and generates non-colliding "_N" suffixed alternatives.
package pathsafe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Candidate suffixes are bounded so a pathological filesystem state cannot
// send resolution into an unbounded loop.
const maxAttempts = 1000

// ErrInvalidPath is returned when a candidate has no usable parent directory
// or the suffix search space is exhausted.
var ErrInvalidPath = errors.New("invalid output path")

// Resolve returns the output path to actually write for candidate.
//
// A candidate that does not exist is returned unchanged. When force is set,
// the candidate is returned unchanged even if it exists (deliberate
// overwrite). Otherwise suffixed variants name_1.ext, name_2.ext, … are
// probed in ascending order and the first free one is returned.
//
// Resolve is side-effect-free: it never creates or reserves the returned
// path. A race between resolution and the engine actually writing the file
// is resolved by the filesystem itself (last writer wins).
func Resolve(candidate string, force bool) (string, error) {
	if candidate == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	dir := filepath.Dir(candidate)
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return "", fmt.Errorf("%w: parent directory %q does not exist", ErrInvalidPath, dir)
	}

	if force || !exists(candidate) {
		return candidate, nil
	}

	base := filepath.Base(candidate)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 1; i <= maxAttempts; i++ {
		alt := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if !exists(alt) {
			return alt, nil
		}
	}
	return "", fmt.Errorf("%w: no free name for %q after %d attempts",
		ErrInvalidPath, candidate, maxAttempts)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
