package probe

import "github.com/backmassage/toh264/internal/planner"

// FormatInfo holds container-level metadata from ffprobe's format section.
// Duration is kept as printed ("1437.123000", or "N/A" for streams without
// a known length).
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   string
	Size       int64
	BitRate    int64
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index         int
	Codec         string
	Width         int
	Height        int
	AvgFrameRate  string
	IsAttachedPic bool
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index    int
	Codec    string
	Channels int
}

// Result is the parsed output of one ffprobe call.
// PrimaryVideo is the first non-attached-pic video stream (nil if none).
type Result struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
	AudioStreams []AudioStream
}

// Resolution returns the primary video frame size, or nil when the source
// has no video stream with known dimensions.
func (r *Result) Resolution() *planner.Resolution {
	if r.PrimaryVideo == nil || r.PrimaryVideo.Width <= 0 || r.PrimaryVideo.Height <= 0 {
		return nil
	}
	return &planner.Resolution{Width: r.PrimaryVideo.Width, Height: r.PrimaryVideo.Height}
}

// MediaInfo converts r into the planner's view of the source. It fails when
// the container reports no usable duration.
func (r *Result) MediaInfo() (planner.MediaInfo, error) {
	d, err := ParseDuration(r.Format.Duration)
	if err != nil {
		return planner.MediaInfo{}, err
	}
	return planner.MediaInfo{Duration: d, Resolution: r.Resolution()}, nil
}
