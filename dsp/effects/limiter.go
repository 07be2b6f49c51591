package effects

import "math"

// HardLimiter clamps samples to [-Ceiling, +Ceiling]. It has no lookahead
// and no release; it is a safety ceiling, not a transparent limiter.
type HardLimiter struct {
	ceiling float64
}

// NewHardLimiter creates a limiter with the given ceiling. The absolute value
// is used; a NaN ceiling becomes 0.
func NewHardLimiter(ceiling float64) *HardLimiter {
	ceiling = math.Abs(ceiling)
	if math.IsNaN(ceiling) {
		ceiling = 0
	}
	return &HardLimiter{ceiling: ceiling}
}

// Ceiling returns the clamp level.
func (l *HardLimiter) Ceiling() float64 { return l.ceiling }

// ProcessSample clamps one sample.
func (l *HardLimiter) ProcessSample(x float64) float64 {
	if x > l.ceiling {
		return l.ceiling
	}
	if x < -l.ceiling {
		return -l.ceiling
	}
	return x
}

// ProcessInPlace clamps buf in place.
func (l *HardLimiter) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = l.ProcessSample(x)
	}
}
