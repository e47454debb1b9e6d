// Package job translates a validated JobRequest into concrete engine
// invocations: argument lists, planned output paths, and glob expansion for
// bulk operations.
package job

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/avicore/internal/request"
)

// ErrUnsupportedOperation is returned when the requested operation, target
// format, or option combination has no argument mapping.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Build expands req into an ordered sequence of engine invocations.
//
// Single-file operations produce exactly one invocation. Bulk operations
// expand their glob pattern(s) against the filesystem at build time into a
// lexicographically sorted sequence, one invocation per matched file; an
// empty match set yields an empty sequence, not an error.
func Build(req request.JobRequest) ([]Invocation, error) {
	opts, err := request.ParseOptions(req.Options)
	if err != nil {
		return nil, err
	}

	target := strings.ToLower(req.TargetFormat)
	if err := validateTarget(req.Operation, target); err != nil {
		return nil, err
	}

	if req.Operation.Bulk() {
		files, err := expandPatterns(req.Inputs)
		if err != nil {
			return nil, err
		}
		invs := make([]Invocation, 0, len(files))
		for _, f := range files {
			invs = append(invs, buildOne(req.Operation, f, target, opts, req.Verbose))
		}
		return invs, nil
	}

	if len(req.Inputs) != 1 {
		return nil, fmt.Errorf("%w: %s takes exactly one input, got %d",
			ErrUnsupportedOperation, req.Operation, len(req.Inputs))
	}
	input := req.Inputs[0]
	if _, err := os.Stat(input); err != nil {
		return nil, fmt.Errorf("input not found: %s", input)
	}
	return []Invocation{buildOne(req.Operation, input, target, opts, req.Verbose)}, nil
}

// buildOne assembles the invocation for a single input file. A missing
// argument mapping is recorded on the invocation instead of failing the
// whole build.
func buildOne(op request.Operation, input, target string, opts request.Options, verbose bool) Invocation {
	inv := Invocation{
		InputPath:         input,
		PlannedOutputPath: plannedOutput(op, input, target),
		Operation:         op,
	}

	profile, err := profileArgs(op, input, target, opts)
	if err != nil {
		inv.Err = err
		return inv
	}

	args := make([]string, 0, 16)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y")
	if verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input ---
	args = append(args, "-i", input)

	// --- Operation profile ---
	args = append(args, profile...)

	inv.Args = args
	return inv
}

// profileArgs selects the stream/codec argument fragment for the operation.
func profileArgs(op request.Operation, input, target string, opts request.Options) ([]string, error) {
	switch op {
	case request.OpConvert, request.OpBulkConvert:
		if audioFormats[target] {
			// Audio conversion lets the engine pick codecs from the
			// output extension, matching legacy behavior.
			return nil, nil
		}
		if opts.Fast {
			return streamCopyArgs(), nil
		}
		return videoEncodeArgs(), nil

	case request.OpMute:
		return muteArgs(), nil

	case request.OpExtractAudio:
		return extractAudioArgs(), nil

	case request.OpBulkAudio, request.OpConvertImage:
		return nil, nil

	case request.OpCompressImage:
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input)), ".")
		return QualityArgs(ext, op, opts.Quality)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
}

// plannedOutput derives the planned output path from the input's location,
// base name, and the target format. Mute without an explicit override and
// image compression keep the input's own name; the just-in-time path
// resolution turns that into a "_N" sibling unless force is set.
func plannedOutput(op request.Operation, input, target string) string {
	switch op {
	case request.OpMute:
		if target == "" {
			return input
		}
		return swapExt(input, target)
	case request.OpCompressImage:
		return input
	case request.OpExtractAudio:
		if target == "" {
			target = "mp3"
		}
		return swapExt(input, target)
	default:
		return swapExt(input, target)
	}
}

// validateTarget checks the target format against the operation's
// allow-list before any expansion happens.
func validateTarget(op request.Operation, target string) error {
	ok := false
	switch op {
	case request.OpConvert:
		ok = videoFormats[target] || audioFormats[target]
	case request.OpBulkConvert:
		ok = videoFormats[target]
	case request.OpBulkAudio:
		ok = audioFormats[target]
	case request.OpExtractAudio:
		ok = target == "" || audioFormats[target]
	case request.OpConvertImage:
		ok = imageFormats[target]
	case request.OpMute:
		ok = target == "" || videoFormats[target]
	case request.OpCompressImage:
		ok = target == ""
	}
	if !ok {
		return fmt.Errorf("%w: %s to %q", ErrUnsupportedOperation, op, target)
	}
	return nil
}

// expandPatterns expands glob patterns against the filesystem, deduplicates,
// drops non-regular files, and sorts lexicographically for deterministic
// processing order. Literal paths that exist are accepted as-is even when
// they contain no glob metacharacters.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			return
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			add(p)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)
	return files, nil
}

func swapExt(input, ext string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(input), stem+"."+ext)
}
