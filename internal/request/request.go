// Package request defines the validated job request handed to the core by
// the command layer, and the normalization of its loosely-typed option bag.
package request

// Operation identifies what the engine should do with the input(s).
type Operation string

const (
	OpConvert       Operation = "convert"        // Single-file container/codec conversion.
	OpBulkConvert   Operation = "bulk-convert"   // Pattern-driven video conversion.
	OpMute          Operation = "mute"           // Strip audio streams, copy video.
	OpExtractAudio  Operation = "extract-audio"  // Pull the audio track out of a video.
	OpBulkAudio     Operation = "bulk-audio"     // Pattern-driven audio conversion.
	OpCompressImage Operation = "compress-image" // Pattern-driven image compression.
	OpConvertImage  Operation = "convert-image"  // Single-file image conversion.
)

// Bulk reports whether the operation expands a pattern into many
// invocations rather than exactly one.
func (op Operation) Bulk() bool {
	switch op {
	case OpBulkConvert, OpBulkAudio, OpCompressImage:
		return true
	}
	return false
}

// JobRequest is the validated unit of work produced by the command layer.
// It is immutable once constructed; the core never parses raw command-line
// tokens itself.
type JobRequest struct {
	Operation    Operation
	Inputs       []string // File paths, or glob patterns for bulk operations.
	TargetFormat string   // Extension without dot ("mp4", "mp3", …). Optional for mute/compress.
	Options      map[string]string
	Verbose      bool
}
