package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) on the unit circle at freqHz, z = e^(j*2*pi*f/fs).
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	// z^-1 and z^-2
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeSquared returns |H(f)|^2 without complex arithmetic. With
// k = 2*cos(w) both polynomials reduce to p0 + p1*k + p2*k^2 form.
//
// The expansion cancels badly where |H| is small (a high-pass far below its
// cutoff) and then keeps only about five significant digits. Use
// MagnitudeDB or Response when precision matters.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	k := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)

	num := sqr(c.B0-c.B2) + c.B1*c.B1 + (c.B1*(c.B0+c.B2)+c.B0*c.B2*k)*k
	den := sqr(1-c.A2) + c.A1*c.A1 + (c.A1*(1+c.A2)+c.A2*k)*k

	return num / den
}

// MagnitudeDB returns the gain at freqHz in dB, evaluated from Response.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// DCGain is H(1), the settled output for a unit step. It is +Inf when a pole
// sits at z = 1.
func (c *Coefficients) DCGain() float64 {
	return evalAt(c, 1)
}

// NyquistGain is H(-1).
func (c *Coefficients) NyquistGain() float64 {
	return evalAt(c, -1)
}

// evalAt evaluates H at a real z of +1 or -1.
func evalAt(c *Coefficients, z float64) float64 {
	den := 1 + c.A1*z + c.A2
	if den == 0 {
		return math.Inf(1)
	}

	return (c.B0 + c.B1*z + c.B2) / den
}

// Response multiplies the responses of every section.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascade gain at freqHz in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := 0.0
	for i := range c.sections {
		db += c.sections[i].MagnitudeDB(freqHz, sampleRate)
	}

	return db
}

func sqr(x float64) float64 { return x * x }
