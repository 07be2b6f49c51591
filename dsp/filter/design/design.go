package design

import (
	"math"

	"github.com/cwbudde/algo-signalchain/dsp/filter/biquad"
)

// ButterworthQ is the Q of a maximally flat second-order section.
const ButterworthQ = 1 / math.Sqrt2

// Lowpass designs an RBJ low-pass section at freq (Hz) with quality factor q.
//
// With w0 = 2*pi*freq/sampleRate and alpha = sin(w0)/(2q):
//
//	b0 = b2 = (1-cos w0)/2, b1 = 1-cos w0
//	a0 = 1+alpha, a1 = -2cos w0, a2 = 1-alpha
//
// all divided by a0. The zero value is returned when freq is not inside
// (0, sampleRate/2) or the rate is not finite and positive. A non-positive
// or non-finite q falls back to [ButterworthQ].
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	return rbj(freq, q, sampleRate, func(cw float64) (float64, float64) {
		return (1 - cw) / 2, 1 - cw
	})
}

// Highpass designs an RBJ high-pass section. The numerator is
//
//	b0 = b2 = (1+cos w0)/2, b1 = -(1+cos w0)
//
// and the denominator and validation match [Lowpass].
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	return rbj(freq, q, sampleRate, func(cw float64) (float64, float64) {
		return (1 + cw) / 2, -(1 + cw)
	})
}

// rbj builds a section whose numerator is symmetric (b2 == b0). numerator
// maps cos(w0) to (b0, b1).
func rbj(freq, q, sampleRate float64, numerator func(cw float64) (b0, b1 float64)) biquad.Coefficients {
	if !finitePositive(sampleRate) || !finitePositive(freq) || freq >= sampleRate/2 {
		return biquad.Coefficients{}
	}

	if !finitePositive(q) {
		q = ButterworthQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	if math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	b0, b1 := numerator(cw)

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b0 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
