//go:build !fastmath

package effects

import "math"

func mathTanh(x float64) float64 {
	return math.Tanh(x)
}
