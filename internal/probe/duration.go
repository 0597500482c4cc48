package probe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/backmassage/toh264/internal/apperr"
	"github.com/backmassage/toh264/internal/planner"
)

// maxFractionDigits caps the sub-second digits kept; ffprobe prints six.
const maxFractionDigits = 9

var durationPattern = regexp.MustCompile(`^(\d+)(?:\.(\d*))?$`)

// ParseDuration parses ffprobe's "SECONDS[.FRACTION]" duration string.
//
// Trailing zeros of the fraction are dropped ("1437.123000" is 1437 s and
// fractional 123). A fraction starting with a zero is below a tenth of a
// second and cannot change whole-second rounding, so it is stored as 0.
func ParseDuration(s string) (planner.Duration, error) {
	s = strings.TrimSpace(s)
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return planner.Duration{}, apperr.Invalid("ffprobe reported no usable duration (got %q)", s)
	}
	secs, err := strconv.Atoi(m[1])
	if err != nil {
		return planner.Duration{}, apperr.Invalid("duration %q out of range: %w", s, err)
	}

	frac := strings.TrimRight(m[2], "0")
	if len(frac) > maxFractionDigits {
		frac = frac[:maxFractionDigits]
	}
	d := planner.Duration{Seconds: secs}
	if frac != "" && frac[0] != '0' {
		d.Fractional, _ = strconv.Atoi(frac)
	}
	return d, nil
}
