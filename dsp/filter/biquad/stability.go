package biquad

import "math"

// IsStable reports whether both poles of 1 + A1*z^-1 + A2*z^-2 lie strictly
// inside the unit circle, using the stability triangle |A2| < 1 and
// |A1| < 1 + A2.
func (c *Coefficients) IsStable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// IsStable reports whether every section of the cascade is stable.
func (c *Chain) IsStable() bool {
	for i := range c.sections {
		if !c.sections[i].IsStable() {
			return false
		}
	}

	return true
}
