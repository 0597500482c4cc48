package planner

import (
	"os"
	"strconv"
)

// NullSink is the discard target of the first pass of a two-pass encode.
const NullSink = os.DevNull

// Fixed argument groups shared by every invocation. The encode is always
// libx264 High profile, yuv420p, AAC audio, MP4 with the index up front.
var (
	globalArgs      = []string{"-loglevel", "warning", "-stats", "-y"}
	pixFmtArgs      = []string{"-pix_fmt", "yuv420p"}
	profileArgs     = []string{"-profile:v", "high"}
	presetArgs      = []string{"-preset", "veryslow"}
	fastStartArgs   = []string{"-movflags", "+faststart"}
	noAudioArgs     = []string{"-an"}
	nullMuxerArgs   = []string{"-f", "null"}
	videoCodecArgs  = []string{"-c:v", "libx264"}
	audioCodecArgs  = []string{"-c:a", "aac"}
	monoDownmixArgs = []string{"-ac", "1"}
)

// argBuilder accumulates one argument vector. Each method appends one
// section and returns the builder so sections read in command-line order.
type argBuilder struct {
	args Invocation
}

func newArgs() *argBuilder {
	return &argBuilder{args: make(Invocation, 0, 32)}
}

func (b *argBuilder) add(args ...string) *argBuilder {
	b.args = append(b.args, args...)
	return b
}

func (b *argBuilder) input(path string) *argBuilder {
	return b.add("-i", path)
}

// filter adds -filter:v only for a non-empty chain.
func (b *argBuilder) filter(chain string) *argBuilder {
	if chain == "" {
		return b
	}
	return b.add("-filter:v", chain)
}

func (b *argBuilder) crf(crf int) *argBuilder {
	return b.add(videoCodecArgs...).add("-crf", strconv.Itoa(crf))
}

func (b *argBuilder) videoBitrate(kbps int) *argBuilder {
	return b.add(videoCodecArgs...).add("-b:v", kbpsArg(kbps))
}

func (b *argBuilder) pass(n int) *argBuilder {
	return b.add("-pass", strconv.Itoa(n))
}

func (b *argBuilder) audio(a AudioConfig) *argBuilder {
	b.add(audioCodecArgs...).add("-b:a", kbpsArg(a.BitrateKbps))
	if a.Mono {
		b.add(monoDownmixArgs...)
	}
	return b
}

func (b *argBuilder) build() Invocation {
	return b.args
}

// kbpsArg formats a bitrate the way ffmpeg expects it, e.g. "128k".
func kbpsArg(kbps int) string {
	return strconv.Itoa(kbps) + "k"
}
