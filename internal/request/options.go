package request

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrBadOption is returned when the option bag contains an unknown key or a
// value that fails validation.
var ErrBadOption = errors.New("bad job option")

// DefaultQuality matches the legacy compression default.
const DefaultQuality = 60

// Options is the strongly-typed form of the JobRequest option bag. The bag
// is normalized here, at the job-builder boundary, so untyped key-value
// pairs never travel deeper into the core.
type Options struct {
	Fast    bool // Stream-copy profile instead of re-encode, where supported.
	Force   bool // Overwrite existing outputs instead of suffixing.
	Backup  bool // Move the original aside after a successful invocation.
	Quality int  // 0–100, compression quality for image operations.
}

// ParseOptions validates and normalizes an option bag. Absent keys take
// their defaults; unknown keys and out-of-range values are rejected.
func ParseOptions(bag map[string]string) (Options, error) {
	opts := Options{Quality: DefaultQuality}

	for key, val := range bag {
		switch key {
		case "fast", "force", "backup":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return Options{}, fmt.Errorf("%w: %s=%q is not a boolean", ErrBadOption, key, val)
			}
			switch key {
			case "fast":
				opts.Fast = b
			case "force":
				opts.Force = b
			case "backup":
				opts.Backup = b
			}
		case "quality":
			q, err := strconv.Atoi(val)
			if err != nil {
				return Options{}, fmt.Errorf("%w: quality=%q is not an integer", ErrBadOption, val)
			}
			if q < 0 || q > 100 {
				return Options{}, fmt.Errorf("%w: quality %d out of range 0-100", ErrBadOption, q)
			}
			opts.Quality = q
		default:
			return Options{}, fmt.Errorf("%w: unknown key %q", ErrBadOption, key)
		}
	}
	return opts, nil
}
