package pipeline

import "time"

// Stats describes a finished run.
type Stats struct {
	Mode        string
	Passes      int
	DryRun      bool
	Elapsed     time.Duration
	OutputBytes int64
	TargetBytes int64 // 0 unless a target size was requested
}

// TargetDelta returns how far the output landed from the target size in
// bytes. Positive means the output is larger than requested.
func (s Stats) TargetDelta() int64 {
	if s.TargetBytes == 0 {
		return 0
	}
	return s.OutputBytes - s.TargetBytes
}
