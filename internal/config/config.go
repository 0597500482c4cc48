// Package config holds runtime configuration: defaults, the settings file,
// environment overrides, CLI flags, and validation.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/backmassage/toh264/internal/apperr"
	"github.com/backmassage/toh264/internal/planner"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// CRF bounds accepted by libx264.
const (
	CRFMin = 0
	CRFMax = 51
)

// TargetSizeMaxMB caps --target-size at one terabyte, keeping the bitrate
// arithmetic far from int64 overflow.
const TargetSizeMaxMB = 1_000_000

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by the settings file and environment, then by CLI flags, before being
// passed (by pointer) to packages that need it.
type Config struct {
	// Paths.
	InputPath  string
	OutputPath string
	Force      bool // Overwrite OutputPath if it exists.

	// Video.
	FramesPerSecond int                 // Default: 30. 0 keeps the source frame rate.
	Scale           *planner.Resolution // --scale WIDTHxHEIGHT.
	ScaleWidth      *int                // --scale-width; height follows the aspect ratio.
	ScaleHeight     *int                // --scale-height; width follows the aspect ratio.

	// Rate control: exactly one of these is set.
	ConstantRateFactor *int // Single pass, 0-51.
	TargetSizeMB       *int // Two pass, SI megabytes.

	// Audio.
	AudioBitrateKbps int // Required.
	Mono             bool

	// Behavior.
	DryRun    bool
	CheckOnly bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.

	// External tools.
	FfmpegPath   string // Default: "ffmpeg" (resolved on PATH).
	FfprobePath  string // Default: "ffprobe" (resolved on PATH).
	SettingsFile string // Default: DefaultSettingsPath().
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// settings and flags apply.
func DefaultConfig() Config {
	return Config{
		FramesPerSecond: 30,
		ColorMode:       ColorAuto,
		FfmpegPath:      "ffmpeg",
		FfprobePath:     "ffprobe",
		SettingsFile:    DefaultSettingsPath(),
	}
}

// Validate checks option semantics: required options, ranges, and mutually
// exclusive groups. In CheckOnly mode only the display and tool settings are
// checked. It does not touch the file system; see [Config.ValidatePaths].
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return apperr.Invalid("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if c.FfmpegPath == "" || c.FfprobePath == "" {
		return apperr.Invalid("ffmpeg and ffprobe paths must not be empty")
	}

	if c.CheckOnly {
		return nil
	}

	if c.InputPath == "" {
		return apperr.Invalid("--in is required")
	}
	if c.OutputPath == "" {
		return apperr.Invalid("--out is required")
	}

	if c.FramesPerSecond < 0 {
		return apperr.Invalid("frames per second must not be negative (got %d)", c.FramesPerSecond)
	}
	if err := c.validateScale(); err != nil {
		return err
	}
	if err := c.validateRateControl(); err != nil {
		return err
	}

	if c.AudioBitrateKbps <= 0 {
		return apperr.Invalid("--audio-bitrate is required and must be positive")
	}
	return nil
}

func (c *Config) validateScale() error {
	set := 0
	if c.Scale != nil {
		set++
		if c.Scale.Width <= 0 || c.Scale.Height <= 0 {
			return apperr.Invalid("scale %s must have positive dimensions", c.Scale)
		}
	}
	if c.ScaleWidth != nil {
		set++
		if *c.ScaleWidth <= 0 {
			return apperr.Invalid("scale width must be positive (got %d)", *c.ScaleWidth)
		}
	}
	if c.ScaleHeight != nil {
		set++
		if *c.ScaleHeight <= 0 {
			return apperr.Invalid("scale height must be positive (got %d)", *c.ScaleHeight)
		}
	}
	if set > 1 {
		return apperr.Invalid("--scale, --scale-width and --scale-height are mutually exclusive")
	}
	return nil
}

func (c *Config) validateRateControl() error {
	switch {
	case c.ConstantRateFactor != nil && c.TargetSizeMB != nil:
		return apperr.Invalid("--constant-rate-factor and --target-size are mutually exclusive")
	case c.ConstantRateFactor != nil:
		if crf := *c.ConstantRateFactor; crf < CRFMin || crf > CRFMax {
			return apperr.Invalid("constant rate factor must be between %d and %d (got %d)", CRFMin, CRFMax, crf)
		}
	case c.TargetSizeMB != nil:
		if mb := *c.TargetSizeMB; mb <= 0 || mb > TargetSizeMaxMB {
			return apperr.Invalid("target size must be between 1 and %d MB (got %d)", TargetSizeMaxMB, mb)
		}
	default:
		return apperr.Invalid("one of --constant-rate-factor or --target-size is required")
	}
	return nil
}

// ValidatePaths checks the file-system preconditions: the input exists and is
// a regular file, the output is not the input, and an existing output is only
// accepted with Force.
func (c *Config) ValidatePaths() error {
	fi, err := os.Stat(c.InputPath)
	if err != nil || !fi.Mode().IsRegular() {
		return apperr.Invalid("input file %s does not exist or is not a file", c.InputPath)
	}

	if samePath(c.InputPath, c.OutputPath) {
		return apperr.Invalid("input file and output file can't be the same")
	}

	if _, err := os.Stat(c.OutputPath); err == nil {
		if !c.Force {
			return apperr.Invalid("output file %s exists; use --force to overwrite it", c.OutputPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return apperr.Invalid("cannot access output file %s: %v", c.OutputPath, err)
	}
	return nil
}

// samePath reports whether a and b name the same file, comparing cleaned
// absolute paths and, when both exist, file identity (symlinks, hard links).
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	fa, errA := os.Stat(a)
	fb, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(fa, fb)
}

// NeedsMediaInfo reports whether the source must be probed before planning:
// for the duration of a size-targeted encode or the resolution checked
// against an explicit --scale.
func (c *Config) NeedsMediaInfo() bool {
	return c.TargetSizeMB != nil || c.Scale != nil
}

// TranscodingConfig converts the validated options into the planner's input.
func (c *Config) TranscodingConfig() planner.TranscodingConfig {
	tc := planner.TranscodingConfig{
		InputPath:  c.InputPath,
		OutputPath: c.OutputPath,
		Video: planner.VideoConfig{
			FrameRate:  c.FramesPerSecond,
			Resolution: c.Scale,
		},
		Audio: planner.AudioConfig{
			Mono:        c.Mono,
			BitrateKbps: c.AudioBitrateKbps,
		},
	}
	if c.ScaleWidth != nil {
		tc.Video.ResolutionWidth = *c.ScaleWidth
	}
	if c.ScaleHeight != nil {
		tc.Video.ResolutionHeight = *c.ScaleHeight
	}

	switch {
	case c.ConstantRateFactor != nil:
		tc.H264 = planner.ConstantQuality{CRF: *c.ConstantRateFactor}
	case c.TargetSizeMB != nil:
		tc.H264 = planner.TargetSize{Megabytes: *c.TargetSizeMB}
	}
	return tc
}
