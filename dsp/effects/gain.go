package effects

import "github.com/cwbudde/algo-vecmath"

// ApplyGain multiplies every sample of buf by gain in place.
func ApplyGain(buf []float64, gain float64) {
	if len(buf) == 0 || gain == 1 {
		return
	}
	vecmath.ScaleBlockInPlace(buf, gain)
}

// Peak returns the largest absolute sample value in buf.
func Peak(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	return vecmath.MaxAbs(buf)
}
