package pipeline

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/backmassage/toh264/internal/apperr"
	"github.com/backmassage/toh264/internal/config"
	"github.com/backmassage/toh264/internal/display"
	"github.com/backmassage/toh264/internal/ffmpeg"
	"github.com/backmassage/toh264/internal/planner"
	"github.com/backmassage/toh264/internal/probe"
)

// stderrLines is how many trailing stderr lines a failure report keeps.
const stderrLines = 20

// Prober inspects the source. probe.Prober is the production implementation.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.Result, error)
}

// Logger is the subset of logging.Logger used by the pipeline.
type Logger interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Debug(format string, args ...any)
}

// Runner wires one transcode together.
type Runner struct {
	Config  *config.Config
	Prober  Prober
	Encoder ffmpeg.Runner
	Log     Logger
}

// Run performs the transcode described by r.Config, which must already have
// passed Validate: validate paths → probe (when needed) → aspect guard →
// derive plan → dry-run listing or execution → summary.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	cfg := r.Config

	// --- Validate ---
	if err := cfg.ValidatePaths(); err != nil {
		return Stats{}, err
	}

	// --- Probe ---
	var info *planner.MediaInfo
	if cfg.NeedsMediaInfo() {
		mi, err := r.mediaInfo(ctx)
		if err != nil {
			return Stats{}, err
		}
		info = mi
	}

	// --- Aspect guard ---
	if cfg.Scale != nil {
		if info.Resolution == nil {
			r.Log.Warn("Source resolution unknown, cannot verify the aspect ratio of %s", cfg.Scale)
		} else if err := planner.CheckAspectRatio(*cfg.Scale, *info.Resolution); err != nil {
			return Stats{}, err
		}
	}

	// --- Plan ---
	plan, err := planner.DerivePlan(cfg.TranscodingConfig(), info)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Mode: plan.Mode(), Passes: len(plan.Invocations()), DryRun: cfg.DryRun}
	r.logPlan(plan, info, &stats)

	// --- Dry-run ---
	if cfg.DryRun {
		for _, inv := range plan.Invocations() {
			r.Log.Info("[DRY] %s", display.FormatCommand(cfg.FfmpegPath, inv))
		}
		r.Log.Success("[DRY] Would encode %s -> %s", cfg.InputPath, cfg.OutputPath)
		return stats, nil
	}

	// --- Execute ---
	start := time.Now()
	if err := ffmpeg.RunPlan(ctx, r.Encoder, plan, cfg.FfmpegPath, r.Log); err != nil {
		r.removePartial(start)
		return stats, err
	}
	stats.Elapsed = time.Since(start)
	if fi, err := os.Stat(cfg.OutputPath); err == nil {
		stats.OutputBytes = fi.Size()
	}

	r.logSummary(stats)
	return stats, nil
}

// mediaInfo probes the input. The duration is only required for a
// size-targeted encode; a --scale check only needs the resolution.
func (r *Runner) mediaInfo(ctx context.Context) (*planner.MediaInfo, error) {
	cfg := r.Config
	r.Log.Info("Probing %s", cfg.InputPath)
	res, err := r.Prober.Probe(ctx, cfg.InputPath)
	if err != nil {
		return nil, err
	}

	if cfg.TargetSizeMB == nil {
		return &planner.MediaInfo{Resolution: res.Resolution()}, nil
	}
	mi, err := res.MediaInfo()
	if err != nil {
		return nil, err
	}
	r.Log.Debug("Source: %s, duration %s s, resolution %s", res.Format.FormatName, mi.Duration, resolutionLabel(mi.Resolution))
	return &mi, nil
}

// removePartial deletes an output ffmpeg started writing during this run.
func (r *Runner) removePartial(start time.Time) {
	fi, err := os.Stat(r.Config.OutputPath)
	if err != nil || fi.ModTime().Before(start.Truncate(time.Second)) {
		return
	}
	if err := os.Remove(r.Config.OutputPath); err == nil {
		r.Log.Warn("Removed partial output %s", r.Config.OutputPath)
	}
}

// --- Logging helpers ---

func (r *Runner) logPlan(plan planner.Plan, info *planner.MediaInfo, stats *Stats) {
	cfg := r.Config
	r.Log.Info("Mode: %s", plan.Mode())
	r.Log.Info("  %s -> %s", cfg.InputPath, cfg.OutputPath)

	if tp, ok := plan.(planner.TwoPass); ok {
		stats.TargetBytes = planner.MegabytesToBytes(*cfg.TargetSizeMB)
		b := tp.Budget
		r.Log.Info("  Duration: %d s", info.Duration.ToSeconds())
		r.Log.Info("  Target size: %s", display.FormatSize(stats.TargetBytes))
		r.Log.Info("  Total bitrate: %s (audio %d kbps, video %d kbps)",
			display.FormatBitrateLabel(int64(b.TotalKbps)), b.AudioKbps, b.VideoKbps)
	}
	if chain := planner.BuildVideoFilter(cfg.TranscodingConfig().Video); chain != "" {
		r.Log.Debug("  Video filter: %s", chain)
	}
}

func (r *Runner) logSummary(s Stats) {
	if s.TargetBytes == 0 {
		r.Log.Success("Encoded in %s (%s)", display.FormatElapsed(s.Elapsed), display.FormatSize(s.OutputBytes))
		return
	}
	r.Log.Success("Encoded in %s (%s, %s of the %s target)",
		display.FormatElapsed(s.Elapsed), display.FormatSize(s.OutputBytes),
		display.FormatRatio(s.OutputBytes, s.TargetBytes), display.FormatSize(s.TargetBytes))
	if s.TargetDelta() > 0 {
		r.Log.Warn("Output exceeds the target by %s", display.FormatSize(s.TargetDelta()))
	}
}

// LogFailure reports err on log. For a failed external process the tail of
// its stderr follows at debug level; ffmpeg's stderr was already shown live.
func LogFailure(log Logger, err error) {
	log.Error("%v", err)

	var pe *apperr.ProcessError
	if !errors.As(err, &pe) {
		return
	}
	if pe.Stderr == "" {
		return
	}
	lines := strings.Split(strings.TrimSpace(pe.Stderr), "\n")
	if len(lines) > stderrLines {
		lines = lines[len(lines)-stderrLines:]
	}
	log.Debug("Last %s output:", pe.Tool)
	for _, l := range lines {
		log.Debug("  %s", l)
	}
}

func resolutionLabel(r *planner.Resolution) string {
	if r == nil {
		return "unknown"
	}
	return r.String()
}
