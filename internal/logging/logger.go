// Package logging provides the leveled console logger. Lines go to stdout
// (errors to stderr) with an optional colored level tag, and are mirrored to
// an append-only log file through github.com/google/logger when --log is set.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/logger"

	"github.com/backmassage/toh264/internal/config"
	"github.com/backmassage/toh264/internal/term"
)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu      sync.Mutex
	palette term.Palette
	verbose bool
	out     io.Writer
	errOut  io.Writer

	file *os.File
	sink *logger.Logger
}

// NewLogger resolves colors for stdout from cfg and optionally opens
// cfg.LogFile for appending. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	l := New(os.Stdout, os.Stderr, term.Resolve(cfg.ColorMode, os.Stdout), cfg.Verbose)

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		// google/logger closes an io.Closer sink on Close; the file stays ours.
		l.sink = logger.Init("toh264", false, false, struct{ io.Writer }{f})
	}
	return l, nil
}

// New returns a Logger writing to out and errOut without a file sink.
func New(out, errOut io.Writer, p term.Palette, verbose bool) *Logger {
	return &Logger{palette: p, verbose: verbose, out: out, errOut: errOut}
}

// Close flushes and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink != nil {
		l.sink.Close()
		l.sink = nil
	}
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	_, _ = io.WriteString(out, ts+" "+l.palette.Paint(color, "["+level+"]")+" "+text+"\n")

	if l.sink == nil {
		return
	}
	// google/logger's Errorf also writes to os.Stderr, which the console
	// line above already covers.
	switch level {
	case "WARN", "ERROR":
		l.sink.Warningf("[%s] %s", level, text)
	default:
		l.sink.Infof("[%s] %s", level, text)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...any) {
	l.line("INFO", l.palette.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...any) {
	l.line("SUCCESS", l.palette.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...any) {
	l.line("WARN", l.palette.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to stderr.
func (l *Logger) Error(format string, args ...any) {
	l.line("ERROR", l.palette.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose.
func (l *Logger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", l.palette.Cyan, fmt.Sprintf(format, args...))
}
