package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails tb on a length mismatch or on the first
// element pair further apart than eps.
func RequireSliceNearlyEqual(tb testing.TB, got, want []float64, eps float64) {
	tb.Helper()

	if len(got) != len(want) {
		tb.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if d := math.Abs(got[i] - want[i]); !(d <= eps) {
			tb.Fatalf("index %d: got %v, want %v (diff %v > %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails tb on the first NaN or Inf.
func RequireFinite(tb testing.TB, data []float64) {
	tb.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tb.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireBounded fails tb on the first element that is non-finite or
// outside [-ceiling, ceiling].
func RequireBounded(tb testing.TB, data []float64, ceiling float64) {
	tb.Helper()

	for i, v := range data {
		if !(math.Abs(v) <= ceiling) {
			tb.Fatalf("index %d: %v outside +-%v", i, v, ceiling)
		}
	}
}
