package planner

import (
	"errors"
	"fmt"

	"github.com/backmassage/toh264/internal/apperr"
)

// Sentinel causes wrapped by the validation errors DerivePlan returns.
var (
	ErrNoMediaInfo    = errors.New("two-pass encoding needs the source duration")
	ErrZeroDuration   = errors.New("source duration rounds to zero seconds")
	ErrBitrateBudget  = errors.New("audio bitrate leaves no room for video")
	ErrNoH264Settings = errors.New("no rate control selected (constant rate factor or target size)")
)

// DerivePlan produces the ffmpeg invocations for cfg. It performs no I/O and
// is deterministic, so the same inputs always yield the same argument vectors.
//
// Flow:
//  1. Build the shared video filter chain (fps, then scale)
//  2. ConstantQuality: one CRF invocation
//  3. TargetSize: derive the video bitrate from the target size, the probed
//     duration and the audio bitrate, then emit an analysis pass writing to
//     the null sink and an output pass
//
// info is only consulted for TargetSize and may be nil otherwise.
func DerivePlan(cfg TranscodingConfig, info *MediaInfo) (Plan, error) {
	chain := BuildVideoFilter(cfg.Video)

	switch h := cfg.H264.(type) {
	case ConstantQuality:
		return SinglePass{Invocation: constantQualityArgs(cfg, chain, h.CRF)}, nil

	case TargetSize:
		if info == nil {
			return nil, apperr.Invalid("target size %d MB: %w", h.Megabytes, ErrNoMediaInfo)
		}
		budget, err := ComputeBudget(h.Megabytes, info.Duration, cfg.Audio.BitrateKbps)
		if err != nil {
			return nil, err
		}
		return TwoPass{
			FirstPass:  firstPassArgs(cfg, chain, budget.VideoKbps),
			SecondPass: secondPassArgs(cfg, chain, budget.VideoKbps),
			Budget:     budget,
		}, nil
	}

	return nil, apperr.Invalid("%w", ErrNoH264Settings)
}

// ComputeBudget splits the average bitrate of a targetMB file lasting d
// between audio (fixed at audioKbps) and video (the remainder). A remainder
// of zero or less is a validation error wrapping ErrBitrateBudget.
func ComputeBudget(targetMB int, d Duration, audioKbps int) (BitrateBudget, error) {
	total, err := ToKbps(MegabytesToBytes(targetMB), d)
	if err != nil {
		return BitrateBudget{}, fmt.Errorf("target size %d MB: %w", targetMB, err)
	}
	video := total - audioKbps
	if video <= 0 {
		return BitrateBudget{}, apperr.Invalid(
			"target size %d MB over %s s allows %d kbps in total but audio takes %d kbps: %w",
			targetMB, d, total, audioKbps, ErrBitrateBudget)
	}
	return BitrateBudget{TotalKbps: total, AudioKbps: audioKbps, VideoKbps: video}, nil
}

func constantQualityArgs(cfg TranscodingConfig, chain string, crf int) Invocation {
	return newArgs().
		add(globalArgs...).
		input(cfg.InputPath).
		filter(chain).
		crf(crf).
		add(pixFmtArgs...).
		audio(cfg.Audio).
		add(profileArgs...).
		add(presetArgs...).
		add(fastStartArgs...).
		add(cfg.OutputPath).
		build()
}

func firstPassArgs(cfg TranscodingConfig, chain string, videoKbps int) Invocation {
	return newArgs().
		add(globalArgs...).
		input(cfg.InputPath).
		filter(chain).
		videoBitrate(videoKbps).
		add(pixFmtArgs...).
		pass(1).
		add(profileArgs...).
		add(noAudioArgs...).
		add(nullMuxerArgs...).
		add(NullSink).
		build()
}

func secondPassArgs(cfg TranscodingConfig, chain string, videoKbps int) Invocation {
	return newArgs().
		add(globalArgs...).
		input(cfg.InputPath).
		filter(chain).
		videoBitrate(videoKbps).
		add(pixFmtArgs...).
		pass(2).
		audio(cfg.Audio).
		add(profileArgs...).
		add(fastStartArgs...).
		add(cfg.OutputPath).
		build()
}
