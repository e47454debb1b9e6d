package job

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/avicore/internal/request"
)

// Target format allow-lists (extension without dot, lowercase).
var (
	videoFormats = map[string]bool{
		"mp4": true, "mkv": true, "mov": true, "avi": true, "webm": true,
	}
	audioFormats = map[string]bool{
		"mp3": true, "wav": true, "aac": true, "flac": true, "ogg": true,
	}
	imageFormats = map[string]bool{
		"jpg": true, "jpeg": true, "png": true, "webp": true, "bmp": true,
	}
)

// Stream argument profiles. The video convert default re-encodes to
// H.264/AAC with the faststart flag; --fast selects the stream-copy
// profile; mute always stream-copies video and subtitles while dropping
// audio. Values match the legacy tool exactly.
func videoEncodeArgs() []string {
	return []string{"-map", "0", "-c:v", "libx264", "-c:a", "aac", "-movflags", "+faststart"}
}

func streamCopyArgs() []string {
	return []string{"-map", "0", "-c", "copy"}
}

func muteArgs() []string {
	return []string{"-map", "0", "-an", "-c:v", "copy", "-c:s", "copy"}
}

func extractAudioArgs() []string {
	return []string{"-vn", "-ab", "192k", "-map", "a"}
}

// profileKey indexes the quality mapping table.
type profileKey struct {
	Format    string
	Operation request.Operation
}

// qualityProfiles maps (targetFormat, operation) to codec-specific quality
// argument fragments. A pure lookup table, not ad hoc string formatting;
// a missing entry means the combination is unsupported.
var qualityProfiles = map[profileKey]func(quality int) []string{
	{"jpg", request.OpCompressImage}:  jpegQualityArgs,
	{"jpeg", request.OpCompressImage}: jpegQualityArgs,
	{"webp", request.OpCompressImage}: jpegQualityArgs,
	{"bmp", request.OpCompressImage}:  jpegQualityArgs,
	{"png", request.OpCompressImage}:  pngCompressionArgs,
}

// jpegQualityArgs maps the 0-100 user quality onto ffmpeg's inverted 2-31
// quantizer scale, clamped at both ends.
func jpegQualityArgs(quality int) []string {
	q := (100 - quality) / 3
	if q < 2 {
		q = 2
	}
	if q > 31 {
		q = 31
	}
	return []string{"-q:v", strconv.Itoa(q)}
}

// pngCompressionArgs selects maximum lossless deflate effort; the user
// quality knob does not apply to PNG.
func pngCompressionArgs(int) []string {
	return []string{"-compression_level", "9"}
}

// QualityArgs returns the quality argument fragment for the given target
// format and operation, or ErrUnsupportedOperation when the table has no
// entry for the combination.
func QualityArgs(format string, op request.Operation, quality int) ([]string, error) {
	fn, ok := qualityProfiles[profileKey{strings.ToLower(format), op}]
	if !ok {
		return nil, fmt.Errorf("%w: no quality mapping for %s/%s", ErrUnsupportedOperation, op, format)
	}
	return fn(quality), nil
}
