package planner

import (
	"strconv"
	"strings"
)

// BuildVideoFilter constructs the comma-joined ffmpeg video filter chain:
// an fps clause when a frame rate is set, then at most one scale clause.
//
// Returns an empty string when no filters are needed; callers must then omit
// -filter:v entirely.
func BuildVideoFilter(v VideoConfig) string {
	var filters []string

	if v.FrameRate > 0 {
		filters = append(filters, "fps="+strconv.Itoa(v.FrameRate))
	}
	if scale := scaleFilter(v); scale != "" {
		filters = append(filters, scale)
	}

	return strings.Join(filters, ",")
}

// scaleFilter picks the scale clause by precedence: explicit resolution,
// then width (height follows the aspect ratio), then height.
func scaleFilter(v VideoConfig) string {
	switch {
	case v.Resolution != nil:
		return "scale=" + strconv.Itoa(v.Resolution.Width) + ":" + strconv.Itoa(v.Resolution.Height)
	case v.ResolutionWidth > 0:
		return "scale=" + strconv.Itoa(v.ResolutionWidth) + ":-1"
	case v.ResolutionHeight > 0:
		return "scale=-1:" + strconv.Itoa(v.ResolutionHeight)
	}
	return ""
}
