package planner

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/backmassage/toh264/internal/apperr"
)

// Duration is a media duration as ffprobe reports it: whole seconds plus a
// sub-second remainder written without its decimal point (Fractional 123
// means .123).
type Duration struct {
	Seconds    int
	Fractional int
}

// ToSeconds rounds d to whole seconds. See DurationToSeconds.
func (d Duration) ToSeconds() int { return DurationToSeconds(d) }

func (d Duration) String() string {
	if d.Fractional == 0 {
		return strconv.Itoa(d.Seconds)
	}
	return fmt.Sprintf("%d.%d", d.Seconds, d.Fractional)
}

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string { return fmt.Sprintf("%dx%d", r.Width, r.Height) }

var resolutionPattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

// ParseResolution parses "WIDTHxHEIGHT" (e.g. "1280x720"). Both dimensions
// must be positive.
func ParseResolution(s string) (Resolution, error) {
	m := resolutionPattern.FindStringSubmatch(s)
	if m == nil {
		return Resolution{}, apperr.Invalid("provided value %q is not a valid resolution in the WIDTHxHEIGHT format", s)
	}
	w, errW := strconv.Atoi(m[1])
	h, errH := strconv.Atoi(m[2])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Resolution{}, apperr.Invalid("provided value %q is not a valid resolution in the WIDTHxHEIGHT format", s)
	}
	return Resolution{Width: w, Height: h}, nil
}

// VideoConfig holds the optional video filters. Zero values mean "unset".
// At most one of Resolution, ResolutionWidth and ResolutionHeight should be
// set; when several are, Resolution wins, then ResolutionWidth.
type VideoConfig struct {
	FrameRate        int
	Resolution       *Resolution
	ResolutionWidth  int
	ResolutionHeight int
}

// H264Config selects the rate control of the libx264 encode. It is either
// ConstantQuality (single pass) or TargetSize (two pass).
type H264Config interface {
	isH264Config()
}

// ConstantQuality encodes in a single pass at a constant rate factor (0-51).
type ConstantQuality struct {
	CRF int
}

// TargetSize encodes in two passes at the average bitrate that makes the
// output roughly Megabytes (SI) large.
type TargetSize struct {
	Megabytes int
}

func (ConstantQuality) isH264Config() {}
func (TargetSize) isH264Config()      {}

// AudioConfig holds the AAC settings.
type AudioConfig struct {
	Mono        bool
	BitrateKbps int
}

// TranscodingConfig is the complete input of DerivePlan.
type TranscodingConfig struct {
	InputPath  string
	OutputPath string
	Video      VideoConfig
	H264       H264Config
	Audio      AudioConfig
}

// MediaInfo is the subset of probed source metadata the planner consumes.
// Resolution is nil when the source has no usable video stream.
type MediaInfo struct {
	Duration   Duration
	Resolution *Resolution
}

// Invocation is the argument vector of one ffmpeg call, without the binary.
type Invocation []string

// Plan is the ordered list of ffmpeg invocations for one transcode. It is
// either a SinglePass or a TwoPass.
type Plan interface {
	Invocations() []Invocation
	Mode() string
}

// SinglePass is a constant-quality plan.
type SinglePass struct {
	Invocation Invocation
}

// TwoPass is a size-targeted plan. SecondPass reads the statistics FirstPass
// leaves in the working directory, so the passes must run in order.
type TwoPass struct {
	FirstPass  Invocation
	SecondPass Invocation
	Budget     BitrateBudget
}

// BitrateBudget is the split of the target average bitrate between video and
// audio, all in kbps.
type BitrateBudget struct {
	TotalKbps int
	AudioKbps int
	VideoKbps int
}

func (p SinglePass) Invocations() []Invocation { return []Invocation{p.Invocation} }
func (p SinglePass) Mode() string              { return "constant rate factor" }

func (p TwoPass) Invocations() []Invocation { return []Invocation{p.FirstPass, p.SecondPass} }
func (p TwoPass) Mode() string              { return "two-pass" }
