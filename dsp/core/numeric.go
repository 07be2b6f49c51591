package core

import "math"

// Clamp limits value to the inclusive range [lo, hi].
//
// The lower bound is applied first, so hi wins when lo > hi. Frequency ranges
// whose upper limit scales with the sample rate rely on this to stay below
// Nyquist.
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		value = lo
	}

	if value > hi {
		value = hi
	}

	return value
}

// ClampInt limits value to [lo, hi]. The upper bound is applied first, so
// lo wins when lo > hi.
func ClampInt(value, lo, hi int) int {
	if value > hi {
		value = hi
	}

	if value < lo {
		value = lo
	}

	return value
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
