// Package display formats values for humans: sizes, bitrates, durations, and
// copy-pasteable command lines.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kballard/go-shellquote"
)

// FormatSize returns an SI size string (e.g. "10 MB"), matching how target
// sizes are given on the command line.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.Bytes(uint64(-bytes))
	}
	return humanize.Bytes(uint64(bytes))
}

// FormatBitrateLabel returns a short label for bitrate in kbps (e.g. "1200 kbps").
func FormatBitrateLabel(kbps int64) string {
	if kbps < 1000 {
		return fmt.Sprintf("%d kbps", kbps)
	}
	return fmt.Sprintf("%.1f Mbps", float64(kbps)/1000)
}

// FormatElapsed rounds d to whole seconds (tenths below one second).
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(100 * time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

// FormatCommand renders bin and args as a single shell-quoted line.
func FormatCommand(bin string, args []string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, bin)
	words = append(words, args...)
	return shellquote.Join(words...)
}

// FormatRatio renders actual/target as a percentage, e.g. "97.3%".
func FormatRatio(actual, target int64) string {
	if target <= 0 {
		return "n/a"
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(actual)*100/float64(target)), ".0") + "%"
}
