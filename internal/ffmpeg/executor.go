package ffmpeg

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/backmassage/toh264/internal/apperr"
	"github.com/backmassage/toh264/internal/planner"
)

// stderrTail is how much of ffmpeg's stderr is kept for error reporting.
const stderrTail = 16 << 10

// Executor runs ffmpeg invocations. Bin is the binary name or path; when
// Stderr is non-nil, ffmpeg's stderr (warnings and -stats progress) is
// tee'd there in real time.
type Executor struct {
	Bin    string
	Stderr io.Writer
}

// Run executes one invocation and waits for it. A failure is returned as an
// *apperr.ProcessError carrying the exit status, the tail of stderr, and a
// classification hint.
func (e Executor) Run(ctx context.Context, args planner.Invocation) error {
	cmd := exec.CommandContext(ctx, e.Bin, args...)

	tail := &tailBuffer{max: stderrTail}
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(tail, e.Stderr)
	} else {
		cmd.Stderr = tail
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	pe := &apperr.ProcessError{
		Tool:     e.Bin,
		Args:     append([]string(nil), args...),
		ExitCode: -1,
		Stderr:   tail.String(),
		Err:      err,
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		pe.ExitCode = ee.ExitCode()
	}
	pe.Hint = Hint(pe.Stderr)
	return pe
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string { return string(t.buf) }
