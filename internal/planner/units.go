package planner

import (
	"math"

	"github.com/backmassage/toh264/internal/apperr"
)

// bytesPerMegabyte is the SI megabyte. A 200 MB target yields a file close to
// 200,000,000 bytes, not 209,715,200.
const bytesPerMegabyte = 1_000_000

// BytesToKilobits converts a byte count to kilobits (1 kbit = 1000 bits).
// Rounding is math.Round, i.e. halves round away from zero. An integer byte
// count never lands on an exact half kilobit, so the tie rule is moot here.
func BytesToKilobits(bytes int64) int64 {
	return int64(math.Round(float64(bytes) * 8 / 1000))
}

// MegabytesToBytes converts SI megabytes to bytes.
func MegabytesToBytes(mb int) int64 {
	return int64(mb) * bytesPerMegabyte
}

// FractionalToFloat interprets the digits of f as a decimal fraction:
// 123 -> 0.123, 5 -> 0.5. Zero and negative values yield 0.
func FractionalToFloat(f int) float64 {
	if f <= 0 {
		return 0
	}
	return float64(f) / math.Pow10(digits(f))
}

// DurationToSeconds rounds d to the nearest whole second; an exact half
// rounds up.
func DurationToSeconds(d Duration) int {
	return d.Seconds + int(math.Round(FractionalToFloat(d.Fractional)))
}

// ToKbps returns the average bitrate, in kbps, that spreads size bytes over d.
// The duration is first rounded to whole seconds; if that leaves zero the
// result is a validation error wrapping ErrZeroDuration.
func ToKbps(size int64, d Duration) (int, error) {
	seconds := DurationToSeconds(d)
	if seconds <= 0 {
		return 0, apperr.Invalid("duration %s s: %w", d, ErrZeroDuration)
	}
	return int(math.Round(float64(BytesToKilobits(size)) / float64(seconds))), nil
}

// digits returns the number of base-10 digits of n > 0.
func digits(n int) int {
	d := 0
	for ; n > 0; n /= 10 {
		d++
	}
	return d
}
