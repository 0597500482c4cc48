package ffmpeg

import "regexp"

// Pre-compiled regexes for classifying ffmpeg stderr output. Checked in
// order by Hint; the first match wins.
var hints = []struct {
	re   *regexp.Regexp
	hint string
}{
	{regexp.MustCompile(`Unknown encoder '?libx264|Encoder \(codec h264\) not found|Unknown encoder`),
		"this ffmpeg build lacks the libx264 or AAC encoder; run toh264 --check"},
	{regexp.MustCompile(`(?i)ffmpeg2pass-\d+\.log|Error reading log file|stats file`),
		"the first-pass statistics are missing; run both passes from the same directory"},
	{regexp.MustCompile(`(?i)No such file or directory`),
		"a file or directory does not exist"},
	{regexp.MustCompile(`(?i)Permission denied`),
		"permission denied"},
	{regexp.MustCompile(`Unrecognized option|Option not found|Invalid argument|Error parsing option`),
		"ffmpeg rejected an option; check the ffmpeg version"},
}

// Hint returns a short explanation for a failed ffmpeg run based on its
// stderr, or "" when nothing known matches.
func Hint(stderr string) string {
	for _, h := range hints {
		if h.re.MatchString(stderr) {
			return h.hint
		}
	}
	return ""
}
