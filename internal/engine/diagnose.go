package engine

import "regexp"

// Pre-compiled regexes for classifying engine stderr into actionable hints.
// Checked in order by [Diagnose]; the first match wins.
var (
	reMissingInput = regexp.MustCompile(
		`No such file or directory|` +
			`Invalid data found when processing input`)

	reUnknownEncoder = regexp.MustCompile(
		`Unknown encoder|Encoder not found|` +
			`Automatic encoder selection failed`)

	rePermission = regexp.MustCompile(
		`Permission denied`)

	reTruncated = regexp.MustCompile(
		`moov atom not found|` +
			`Header missing|` +
			`Truncat(ed|ing)`)
)

// Diagnose inspects engine stderr and returns a short actionable hint, or
// an empty string when no known pattern matches. The full diagnostic tail
// is always preserved alongside; this only prepends a summary.
func Diagnose(stderr string) string {
	switch {
	case reMissingInput.MatchString(stderr):
		return "input file is missing, unreadable, or not a valid media file"
	case reUnknownEncoder.MatchString(stderr):
		return "this ffmpeg build lacks the required encoder"
	case rePermission.MatchString(stderr):
		return "permission denied reading the input or writing the output"
	case reTruncated.MatchString(stderr):
		return "input file appears truncated or corrupt"
	}
	return ""
}
