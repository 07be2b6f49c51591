package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-signalchain/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	return math.Sqrt(c.MagnitudeSquared(freq, sr))
}

func TestLowpass_MatchesCookbook(t *testing.T) {
	const (
		sr     = 44100.0
		cutoff = 100.0
		q      = 0.707
	)

	w0 := 2 * math.Pi * cutoff / sr
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	got := Lowpass(cutoff, q, sr)
	want := biquad.Coefficients{
		B0: (1 - cw) / 2 / a0,
		B1: (1 - cw) / a0,
		B2: (1 - cw) / 2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}

	for _, pair := range [][2]float64{
		{got.B0, want.B0}, {got.B1, want.B1}, {got.B2, want.B2},
		{got.A1, want.A1}, {got.A2, want.A2},
	} {
		if !almostEqual(pair[0], pair[1], 1e-15) {
			t.Fatalf("coefficients = %+v, want %+v", got, want)
		}
	}
}

func TestLowpass_UnityDCGain(t *testing.T) {
	c := Lowpass(100, 0.707, 44100)

	// b0+b1+b2 = 1 + a1 + a2 when H(1) = 1.
	lhs := c.B0 + c.B1 + c.B2
	rhs := c.A1 + c.A2 + 1
	if !almostEqual(lhs, rhs, 1e-5) {
		t.Fatalf("sum(b)=%v, 1+a1+a2=%v", lhs, rhs)
	}
	if !almostEqual(c.DCGain(), 1, 1e-5) {
		t.Fatalf("DC gain = %v, want 1", c.DCGain())
	}
}

func TestHighpass_MatchesCookbook(t *testing.T) {
	const (
		sr     = 48000.0
		cutoff = 20.0
		q      = 0.707
	)

	w0 := 2 * math.Pi * cutoff / sr
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	got := Highpass(cutoff, q, sr)
	if !almostEqual(got.B0, (1+cw)/2/a0, 1e-15) ||
		!almostEqual(got.B1, -(1+cw)/a0, 1e-15) ||
		!almostEqual(got.B2, (1+cw)/2/a0, 1e-15) ||
		!almostEqual(got.A1, -2*cw/a0, 1e-15) ||
		!almostEqual(got.A2, (1-alpha)/a0, 1e-15) {
		t.Fatalf("unexpected highpass coefficients %+v", got)
	}

	if !almostEqual(got.DCGain(), 0, 1e-12) {
		t.Fatalf("highpass DC gain = %v, want 0", got.DCGain())
	}
	if !almostEqual(got.NyquistGain(), 1, 1e-9) {
		t.Fatalf("highpass Nyquist gain = %v, want 1", got.NyquistGain())
	}
}

func TestDesigners_ResponseShape(t *testing.T) {
	sr := 48000.0
	f := 1000.0

	lp := Lowpass(f, 0.707, sr)
	if !(mag(lp, 100, sr) > mag(lp, 10000, sr)) {
		t.Fatal("lowpass shape check failed")
	}
	// Q=0.707 is essentially Butterworth: -3 dB at the cutoff.
	if db := lp.MagnitudeDB(f, sr); !almostEqual(db, -3.01, 0.05) {
		t.Fatalf("lowpass at cutoff = %v dB, want ~-3", db)
	}

	hp := Highpass(f, 0.707, sr)
	if !(mag(hp, 10000, sr) > mag(hp, 100, sr)) {
		t.Fatal("highpass shape check failed")
	}
}

func TestDesigners_StableAcrossRange(t *testing.T) {
	sr := 48000.0
	for _, f := range []float64{20, 100, 1000, 10000, 0.45 * sr} {
		for _, c := range []biquad.Coefficients{Lowpass(f, 0.707, sr), Highpass(f, 0.707, sr)} {
			if !c.IsStable() {
				t.Fatalf("unstable design at %v Hz: %+v", f, c)
			}
		}
	}
}

func TestDesigners_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		sr   float64
	}{
		{"zero freq", 0, 48000},
		{"negative freq", -10, 48000},
		{"nyquist", 24000, 48000},
		{"zero rate", 1000, 0},
		{"nan freq", math.NaN(), 48000},
		{"inf rate", 1000, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lowpass(tt.freq, 0.707, tt.sr); got != (biquad.Coefficients{}) {
				t.Fatalf("Lowpass = %+v, want zero value", got)
			}
			if got := Highpass(tt.freq, 0.707, tt.sr); got != (biquad.Coefficients{}) {
				t.Fatalf("Highpass = %+v, want zero value", got)
			}
		})
	}
}

func TestDesigners_InvalidQFallsBack(t *testing.T) {
	got := Lowpass(1000, 0, 48000)
	want := Lowpass(1000, ButterworthQ, 48000)
	if got != want {
		t.Fatalf("q=0 gave %+v, want default-Q design %+v", got, want)
	}
}
