// Package apperr defines the two error kinds the tool reports: validation
// failures (bad input, conflicting options, degenerate derived values) and
// external process failures (ffprobe or ffmpeg). Every error is fatal to the
// run; ExitCode maps an error to the process exit status.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports input that cannot be transcoded as requested.
type ValidationError struct {
	err error
}

// Invalid returns a *ValidationError. The format follows fmt.Errorf, so %w
// wraps a cause that errors.Is can find.
func Invalid(format string, args ...any) error {
	return &ValidationError{err: fmt.Errorf(format, args...)}
}

func (e *ValidationError) Error() string { return e.err.Error() }
func (e *ValidationError) Unwrap() error { return e.err }

// IsValidation reports whether err (or anything it wraps) is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ProcessError reports a failed ffprobe or ffmpeg invocation.
type ProcessError struct {
	Tool     string   // binary as invoked, e.g. "ffmpeg"
	Args     []string // arguments after the binary
	ExitCode int      // child exit status; -1 when it never exited normally
	Stderr   string   // captured stderr (may be truncated by the caller)
	Hint     string   // short human explanation derived from Stderr, may be empty
	Err      error    // underlying exec error
}

func (e *ProcessError) Error() string {
	var b strings.Builder
	b.WriteString(e.Tool)
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " exited with status %d", e.ExitCode)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	} else {
		b.WriteString(" failed")
	}
	if e.Hint != "" {
		b.WriteString(" (")
		b.WriteString(e.Hint)
		b.WriteString(")")
	}
	return b.String()
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ExitCode maps err to a process exit status: 0 for nil, the child's status
// for a *ProcessError that exited non-zero, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var pe *ProcessError
	if errors.As(err, &pe) && pe.ExitCode > 0 && pe.ExitCode < 256 {
		return pe.ExitCode
	}
	return 1
}
