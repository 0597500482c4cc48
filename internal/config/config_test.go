package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/backmassage/toh264/internal/apperr"
	"github.com/backmassage/toh264/internal/planner"
)

func intp(n int) *int { return &n }

// validCRF returns a config that passes Validate in constant-quality mode.
func validCRF() Config {
	cfg := DefaultConfig()
	cfg.InputPath = "in.mkv"
	cfg.OutputPath = "out.mp4"
	cfg.ConstantRateFactor = intp(23)
	cfg.AudioBitrateKbps = 128
	return cfg
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FramesPerSecond != 30 {
		t.Errorf("default FramesPerSecond = %d, want 30", cfg.FramesPerSecond)
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
	if cfg.FfmpegPath != "ffmpeg" || cfg.FfprobePath != "ffprobe" {
		t.Errorf("default tool paths = %q, %q", cfg.FfmpegPath, cfg.FfprobePath)
	}
	if cfg.Force || cfg.Mono || cfg.DryRun {
		t.Error("boolean options should default to false")
	}
	if cfg.ConstantRateFactor != nil || cfg.TargetSizeMB != nil {
		t.Error("no rate control should be selected by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid crf", func(*Config) {}, false},
		{"valid target size", func(c *Config) { c.ConstantRateFactor = nil; c.TargetSizeMB = intp(200) }, false},
		{"crf lower bound", func(c *Config) { c.ConstantRateFactor = intp(0) }, false},
		{"crf upper bound", func(c *Config) { c.ConstantRateFactor = intp(51) }, false},
		{"crf too high", func(c *Config) { c.ConstantRateFactor = intp(52) }, true},
		{"crf negative", func(c *Config) { c.ConstantRateFactor = intp(-1) }, true},
		{"both rate controls", func(c *Config) { c.TargetSizeMB = intp(10) }, true},
		{"no rate control", func(c *Config) { c.ConstantRateFactor = nil }, true},
		{"zero target size", func(c *Config) { c.ConstantRateFactor = nil; c.TargetSizeMB = intp(0) }, true},
		{"target size upper bound", func(c *Config) { c.ConstantRateFactor = nil; c.TargetSizeMB = intp(TargetSizeMaxMB) }, false},
		{"absurd target size", func(c *Config) { c.ConstantRateFactor = nil; c.TargetSizeMB = intp(10_000_000_000_000) }, true},
		{"missing input", func(c *Config) { c.InputPath = "" }, true},
		{"missing output", func(c *Config) { c.OutputPath = "" }, true},
		{"missing audio bitrate", func(c *Config) { c.AudioBitrateKbps = 0 }, true},
		{"negative fps", func(c *Config) { c.FramesPerSecond = -1 }, true},
		{"fps zero keeps source", func(c *Config) { c.FramesPerSecond = 0 }, false},
		{"scale", func(c *Config) { c.Scale = &planner.Resolution{Width: 1280, Height: 720} }, false},
		{"scale width", func(c *Config) { c.ScaleWidth = intp(1280) }, false},
		{"scale width zero", func(c *Config) { c.ScaleWidth = intp(0) }, true},
		{"scale height negative", func(c *Config) { c.ScaleHeight = intp(-720) }, true},
		{"scale and width", func(c *Config) {
			c.Scale = &planner.Resolution{Width: 1280, Height: 720}
			c.ScaleWidth = intp(1280)
		}, true},
		{"width and height", func(c *Config) { c.ScaleWidth = intp(1280); c.ScaleHeight = intp(720) }, true},
		{"bad color mode", func(c *Config) { c.ColorMode = "rainbow" }, true},
		{"empty ffmpeg path", func(c *Config) { c.FfmpegPath = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCRF()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.IsValidation(err) {
				t.Errorf("Validate() error should be a validation error: %v", err)
			}
		})
	}
}

func TestValidate_CheckOnlySkipsTranscodeOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass with no transcode options when CheckOnly is true, got: %v", err)
	}
}

func TestValidatePaths(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mkv")
	existing := filepath.Join(dir, "exists.mp4")
	for _, p := range []string{input, existing} {
		if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	link := filepath.Join(dir, "link.mkv")
	if err := os.Symlink(input, link); err != nil {
		link = ""
	}

	tests := []struct {
		name    string
		input   string
		output  string
		force   bool
		wantErr bool
	}{
		{"fresh output", input, filepath.Join(dir, "out.mp4"), false, false},
		{"missing input", filepath.Join(dir, "nope.mkv"), filepath.Join(dir, "out.mp4"), false, true},
		{"input is a directory", dir, filepath.Join(dir, "out.mp4"), false, true},
		{"output equals input", input, input, true, true},
		{"output equals input after cleaning", input, filepath.Join(dir, ".", "in.mkv"), true, true},
		{"output exists without force", input, existing, false, true},
		{"output exists with force", input, existing, true, false},
	}
	if link != "" {
		tests = append(tests, struct {
			name    string
			input   string
			output  string
			force   bool
			wantErr bool
		}{"output is a symlink to input", input, link, true, true})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCRF()
			cfg.InputPath = tt.input
			cfg.OutputPath = tt.output
			cfg.Force = tt.force
			err := cfg.ValidatePaths()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePaths() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.IsValidation(err) {
				t.Errorf("ValidatePaths() error should be a validation error: %v", err)
			}
		})
	}
}

func TestNeedsMediaInfo(t *testing.T) {
	cfg := validCRF()
	if cfg.NeedsMediaInfo() {
		t.Error("CRF without --scale should not need probing")
	}
	cfg.ScaleWidth = intp(640)
	if cfg.NeedsMediaInfo() {
		t.Error("--scale-width keeps the aspect ratio and should not need probing")
	}
	cfg.ScaleWidth = nil
	cfg.Scale = &planner.Resolution{Width: 640, Height: 360}
	if !cfg.NeedsMediaInfo() {
		t.Error("--scale needs the source resolution")
	}
	cfg.Scale = nil
	cfg.ConstantRateFactor = nil
	cfg.TargetSizeMB = intp(10)
	if !cfg.NeedsMediaInfo() {
		t.Error("--target-size needs the source duration")
	}
}

func TestTranscodingConfig(t *testing.T) {
	cfg := validCRF()
	cfg.ScaleHeight = intp(720)
	cfg.Mono = true

	want := planner.TranscodingConfig{
		InputPath:  "in.mkv",
		OutputPath: "out.mp4",
		Video:      planner.VideoConfig{FrameRate: 30, ResolutionHeight: 720},
		H264:       planner.ConstantQuality{CRF: 23},
		Audio:      planner.AudioConfig{Mono: true, BitrateKbps: 128},
	}
	if diff := cmp.Diff(want, cfg.TranscodingConfig()); diff != "" {
		t.Errorf("TranscodingConfig() mismatch (-want +got):\n%s", diff)
	}

	cfg.ConstantRateFactor = nil
	cfg.TargetSizeMB = intp(25)
	if got := cfg.TranscodingConfig().H264; got != (planner.TargetSize{Megabytes: 25}) {
		t.Errorf("H264 = %#v, want TargetSize{25}", got)
	}
}

func TestValidate_ErrorsAreValidation(t *testing.T) {
	cfg := validCRF()
	cfg.AudioBitrateKbps = -5
	err := cfg.Validate()
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %v is not a *apperr.ValidationError", err)
	}
}
