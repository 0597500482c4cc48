package probe

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/backmassage/toh264/internal/apperr"
	"github.com/backmassage/toh264/internal/planner"
)

// Matroska file whose first video stream is cover art.
const sampleCoverArt = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 900,
      "disposition": { "default": 0, "attached_pic": 1 }
    },
    {
      "index": 1,
      "codec_name": "hevc",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "avg_frame_rate": "24000/1001",
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "index": 2,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "index": 3,
      "codec_name": "ass",
      "codec_type": "subtitle",
      "disposition": { "default": 0 }
    }
  ],
  "format": {
    "filename": "/media/test/episode.mkv",
    "format_name": "matroska,webm",
    "duration": "1437.123000",
    "size": "1234567890",
    "bit_rate": "6873456"
  }
}`

// Audio-only file: no video stream, whole-second duration.
const sampleAudioOnly = `{
  "streams": [
    { "index": 0, "codec_name": "flac", "codec_type": "audio", "channels": 6 }
  ],
  "format": {
    "filename": "album.flac",
    "format_name": "flac",
    "duration": "60.000000",
    "size": "30000000",
    "bit_rate": "4000000"
  }
}`

// Live capture without a known duration.
const sampleNoDuration = `{
  "streams": [
    { "index": 0, "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720 }
  ],
  "format": { "filename": "capture.ts", "format_name": "mpegts", "duration": "N/A" }
}`

func TestParseJSON_CoverArtSkipped(t *testing.T) {
	r, err := ParseJSON([]byte(sampleCoverArt))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	wantFormat := FormatInfo{
		Filename:   "/media/test/episode.mkv",
		FormatName: "matroska,webm",
		Duration:   "1437.123000",
		Size:       1234567890,
		BitRate:    6873456,
	}
	if diff := cmp.Diff(wantFormat, r.Format); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}

	if r.PrimaryVideo == nil {
		t.Fatal("PrimaryVideo is nil")
	}
	if r.PrimaryVideo.Index != 1 || r.PrimaryVideo.Codec != "hevc" {
		t.Errorf("primary video = %+v, want index 1 hevc", r.PrimaryVideo)
	}
	if len(r.AudioStreams) != 1 || r.AudioStreams[0].Channels != 2 {
		t.Errorf("audio streams = %+v", r.AudioStreams)
	}

	info, err := r.MediaInfo()
	if err != nil {
		t.Fatalf("MediaInfo: %v", err)
	}
	want := planner.MediaInfo{
		Duration:   planner.Duration{Seconds: 1437, Fractional: 123},
		Resolution: &planner.Resolution{Width: 1920, Height: 1080},
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("MediaInfo mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON_AudioOnly(t *testing.T) {
	r, err := ParseJSON([]byte(sampleAudioOnly))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.PrimaryVideo != nil || r.Resolution() != nil {
		t.Errorf("audio-only file reported video: %+v", r.PrimaryVideo)
	}
	info, err := r.MediaInfo()
	if err != nil {
		t.Fatalf("MediaInfo: %v", err)
	}
	if info.Duration != (planner.Duration{Seconds: 60}) || info.Resolution != nil {
		t.Errorf("MediaInfo = %+v", info)
	}
}

func TestParseJSON_NoDuration(t *testing.T) {
	r, err := ParseJSON([]byte(sampleNoDuration))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if _, err := r.MediaInfo(); !apperr.IsValidation(err) {
		t.Errorf("MediaInfo error = %v, want a validation error", err)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestResolution_ZeroDimensions(t *testing.T) {
	r := &Result{PrimaryVideo: &VideoStream{Width: 0, Height: 720}}
	if got := r.Resolution(); got != nil {
		t.Errorf("Resolution() = %v, want nil", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    planner.Duration
		wantErr bool
	}{
		{"1437.123000", planner.Duration{Seconds: 1437, Fractional: 123}, false},
		{"60.000000", planner.Duration{Seconds: 60}, false},
		{"60", planner.Duration{Seconds: 60}, false},
		{"59.5", planner.Duration{Seconds: 59, Fractional: 5}, false},
		{"60.040000", planner.Duration{Seconds: 60}, false},
		{" 10.25\n", planner.Duration{Seconds: 10, Fractional: 25}, false},
		{"3.1234567891234", planner.Duration{Seconds: 3, Fractional: 123456789}, false},
		{"N/A", planner.Duration{}, true},
		{"", planner.Duration{}, true},
		{"-1.5", planner.Duration{}, true},
		{"1e3", planner.Duration{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDuration_RoundsLikeProbedValue(t *testing.T) {
	d, err := ParseDuration("59.500000")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.ToSeconds(); got != 60 {
		t.Errorf("ToSeconds() = %d, want 60", got)
	}
}

// fakeTool writes an executable shell script standing in for ffprobe.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProber_Probe(t *testing.T) {
	bin := fakeTool(t, "cat <<'JSON'\n"+sampleCoverArt+"\nJSON\n")

	r, err := Prober{Bin: bin}.Probe(context.Background(), "episode.mkv")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if r.Format.Duration != "1437.123000" {
		t.Errorf("duration = %q", r.Format.Duration)
	}
}

func TestProber_ProbeFailure(t *testing.T) {
	bin := fakeTool(t, "echo 'episode.mkv: No such file or directory' >&2\nexit 1\n")

	_, err := Prober{Bin: bin}.Probe(context.Background(), "episode.mkv")
	var pe *apperr.ProcessError
	if !errors.As(err, &pe) {
		t.Fatalf("Probe error = %v, want *apperr.ProcessError", err)
	}
	if pe.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", pe.ExitCode)
	}
	if pe.Stderr == "" {
		t.Error("Stderr was not captured")
	}
}

func TestProber_MissingBinary(t *testing.T) {
	_, err := Prober{Bin: filepath.Join(t.TempDir(), "no-such-ffprobe")}.Probe(context.Background(), "x.mkv")
	var pe *apperr.ProcessError
	if !errors.As(err, &pe) || pe.ExitCode != -1 {
		t.Errorf("Probe error = %v, want ProcessError with ExitCode -1", err)
	}
	if apperr.ExitCode(err) != 1 {
		t.Errorf("ExitCode(err) = %d, want 1", apperr.ExitCode(err))
	}
}
