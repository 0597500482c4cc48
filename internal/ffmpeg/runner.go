package ffmpeg

import (
	"context"
	"fmt"

	"github.com/backmassage/toh264/internal/display"
	"github.com/backmassage/toh264/internal/planner"
)

// Runner runs one invocation to completion. Executor is the production
// implementation.
type Runner interface {
	Run(ctx context.Context, args planner.Invocation) error
}

// Logger is the subset of logging.Logger used here.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// RunPlan runs every invocation of plan in order and stops at the first
// failure. bin is only used to echo the command line in debug output.
func RunPlan(ctx context.Context, r Runner, plan planner.Plan, bin string, log Logger) error {
	invs := plan.Invocations()
	for i, inv := range invs {
		if err := ctx.Err(); err != nil {
			return err
		}
		label := passLabel(i, len(invs))
		log.Info("Running %s", label)
		log.Debug("%s", display.FormatCommand(bin, inv))
		if err := r.Run(ctx, inv); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
	}
	return nil
}

func passLabel(i, n int) string {
	if n == 1 {
		return "encode"
	}
	switch i {
	case 0:
		return "first pass"
	case 1:
		return "second pass"
	default:
		return fmt.Sprintf("pass %d", i+1)
	}
}
