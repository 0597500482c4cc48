package planner

import "github.com/backmassage/toh264/internal/apperr"

// CheckAspectRatio rejects an explicit WIDTHxHEIGHT scale unless both source
// dimensions are evenly divisible by the requested ones.
func CheckAspectRatio(requested, source Resolution) error {
	if requested.Width <= 0 || requested.Height <= 0 {
		return apperr.Invalid("invalid target resolution %s", requested)
	}
	if source.Width%requested.Width != 0 || source.Height%requested.Height != 0 {
		return apperr.Invalid("specified resolution %s does not keep the aspect ratio of %s", requested, source)
	}
	return nil
}
