package core

import (
	"errors"
	"math"
)

// Sentinel errors returned by engine constructors and rescaling.
var (
	ErrInvalidSettings = errors.New("invalid settings")
	ErrInvalidScale    = errors.New("invalid scale")
)

// ValidScale reports whether s is a usable scale factor: positive and
// finite. NaN fails the comparison.
func ValidScale(s float64) bool {
	return s > 0 && !math.IsInf(s, 0)
}
