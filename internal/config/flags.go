package config

// This file implements CLI flag registration on a cobra command.
// Flags are grouped into files, video, rate control, audio, behavior, display,
// and tools. Negated flags (--no-color) are applied after parsing so Config
// defaults and settings hold unless the user passes the flag.

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/backmassage/toh264/internal/planner"
)

// Flags ties a command's flag set to the Config it fills.
type Flags struct {
	cfg *Config
	fs  *pflag.FlagSet

	forceColor bool
	noColor    bool
}

// DefineFlags registers every flag on cmd, binding values into cfg, and
// declares the mutually exclusive groups cobra enforces before RunE runs.
func DefineFlags(cmd *cobra.Command, cfg *Config) *Flags {
	f := &Flags{cfg: cfg, fs: cmd.Flags()}

	f.defineFileFlags()
	f.defineVideoFlags()
	f.defineRateControlFlags()
	f.defineAudioFlags()
	f.defineBehaviorFlags()
	f.defineDisplayFlags()
	f.defineToolFlags()

	cmd.MarkFlagsMutuallyExclusive("scale", "scale-width", "scale-height")
	cmd.MarkFlagsMutuallyExclusive("constant-rate-factor", "target-size")
	cmd.MarkFlagsMutuallyExclusive("color", "no-color")
	return f
}

// defineFileFlags registers -i/--in, -o/--out, -f/--force.
func (f *Flags) defineFileFlags() {
	f.fs.StringVarP(&f.cfg.InputPath, "in", "i", "", "Input file `PATH`")
	f.fs.StringVarP(&f.cfg.OutputPath, "out", "o", "", "Output file `PATH`")
	f.fs.BoolVarP(&f.cfg.Force, "force", "f", false, "Overwrite output file if it exists")
}

// defineVideoFlags registers --frames-per-second and the scale group.
func (f *Flags) defineVideoFlags() {
	f.fs.IntVar(&f.cfg.FramesPerSecond, "frames-per-second", f.cfg.FramesPerSecond,
		"Output frame rate in `FPS` (0 keeps the source rate)")
	f.fs.VarP(&resolutionValue{&f.cfg.Scale}, "scale", "s", "Scale to `WIDTHxHEIGHT`")
	f.fs.Var(&optionalIntValue{&f.cfg.ScaleWidth}, "scale-width", "Scale to `WIDTH`, keeping the aspect ratio")
	f.fs.Var(&optionalIntValue{&f.cfg.ScaleHeight}, "scale-height", "Scale to `HEIGHT`, keeping the aspect ratio")
}

// defineRateControlFlags registers --constant-rate-factor and -t/--target-size.
func (f *Flags) defineRateControlFlags() {
	f.fs.Var(&optionalIntValue{&f.cfg.ConstantRateFactor}, "constant-rate-factor",
		fmt.Sprintf("Single-pass quality, `CRF` value between %d and %d", CRFMin, CRFMax))
	f.fs.VarP(&optionalIntValue{&f.cfg.TargetSizeMB}, "target-size", "t",
		"Two-pass encode to a desired file `SIZE` in MB")
}

// defineAudioFlags registers --audio-bitrate and -m/--mono.
func (f *Flags) defineAudioFlags() {
	f.fs.IntVar(&f.cfg.AudioBitrateKbps, "audio-bitrate", 0, "Audio `BITRATE` in kbps")
	f.fs.BoolVarP(&f.cfg.Mono, "mono", "m", false, "Downmix audio to mono")
}

// defineBehaviorFlags registers -d/--dry-run and -c/--check.
func (f *Flags) defineBehaviorFlags() {
	f.fs.BoolVarP(&f.cfg.DryRun, "dry-run", "d", false, "Print the ffmpeg commands; do not encode")
	f.fs.BoolVarP(&f.cfg.CheckOnly, "check", "c", false, "System diagnostics (ffmpeg, ffprobe, libx264, AAC) and exit")
}

// defineDisplayFlags registers --color, --no-color, -v/--verbose, -l/--log.
func (f *Flags) defineDisplayFlags() {
	f.fs.BoolVar(&f.forceColor, "color", false, "Force colored logs")
	f.fs.BoolVar(&f.noColor, "no-color", false, "Disable colored logs")
	f.fs.BoolVarP(&f.cfg.Verbose, "verbose", "v", false, "Verbose output (log every ffmpeg command)")
	f.fs.StringVarP(&f.cfg.LogFile, "log", "l", f.cfg.LogFile, "Append logs to `PATH`")
}

// defineToolFlags registers --ffmpeg, --ffprobe, --config.
func (f *Flags) defineToolFlags() {
	f.fs.StringVar(&f.cfg.FfmpegPath, "ffmpeg", f.cfg.FfmpegPath, "ffmpeg binary `PATH`")
	f.fs.StringVar(&f.cfg.FfprobePath, "ffprobe", f.cfg.FfprobePath, "ffprobe binary `PATH`")
	f.fs.StringVar(&f.cfg.SettingsFile, "config", f.cfg.SettingsFile, "Settings file `PATH` (YAML)")
}

// Changed reports whether the user set the named flag.
func (f *Flags) Changed(name string) bool {
	return f.fs.Changed(name)
}

// ApplyNegated copies --color/--no-color into the Config. Call after settings
// have been applied so explicit flags win.
func (f *Flags) ApplyNegated() {
	if f.noColor {
		f.cfg.ColorMode = ColorNever
	} else if f.forceColor {
		f.cfg.ColorMode = ColorAlways
	}
}

// pflag.Value adapters for optional values.

type resolutionValue struct{ p **planner.Resolution }

func (r *resolutionValue) String() string {
	if *r.p == nil {
		return ""
	}
	return (*r.p).String()
}

func (r *resolutionValue) Set(s string) error {
	res, err := planner.ParseResolution(s)
	if err != nil {
		return err
	}
	*r.p = &res
	return nil
}

func (r *resolutionValue) Type() string { return "resolution" }

type optionalIntValue struct{ p **int }

func (o *optionalIntValue) String() string {
	if *o.p == nil {
		return ""
	}
	return strconv.Itoa(**o.p)
}

func (o *optionalIntValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number (got %q)", s)
	}
	*o.p = &n
	return nil
}

func (o *optionalIntValue) Type() string { return "int" }
