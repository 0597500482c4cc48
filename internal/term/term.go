// Package term resolves the ANSI color palette and detects terminals.
//
// A Palette is a plain value: it is resolved once during startup and handed
// to whatever renders output (the logger, the banner). When colors are
// disabled every field is empty, making string concatenation a no-op.
package term

import (
	"os"
	"strings"

	xterm "golang.org/x/term"

	"github.com/backmassage/toh264/internal/config"
)

// Palette holds ANSI color sequences. The zero value is colorless.
type Palette struct {
	Red     string
	Green   string
	Yellow  string
	Blue    string
	Cyan    string
	Magenta string
	NC      string // Reset sequence.
}

// ansi is the palette used when colors are enabled.
var ansi = Palette{
	Red:     "\033[1;91m",
	Green:   "\033[1;92m",
	Yellow:  "\033[1;93m",
	Blue:    "\033[1;94m",
	Cyan:    "\033[1;96m",
	Magenta: "\033[1;95m",
	NC:      "\033[0m",
}

// Resolve returns the palette for mode when output goes to f.
func Resolve(mode config.ColorMode, f *os.File) Palette {
	if enabled(mode, f) {
		return ansi
	}
	return Palette{}
}

// Enabled reports whether p carries any color.
func (p Palette) Enabled() bool { return p.NC != "" }

// Paint wraps s in color and reset when p is enabled.
func (p Palette) Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + p.NC
}

// enabled determines whether colors should be used based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func enabled(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}
