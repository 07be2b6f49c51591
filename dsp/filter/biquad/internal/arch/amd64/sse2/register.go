//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-signalchain/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "sse2",
		SIMDLevel:    cpu.SIMDSSE2,
		Priority:     10,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 2x-unrolled scalar kernel. Each output still evaluates
// the reference expression in the same operand order.
func processBlock(c registry.Coefficients, s registry.State, buf []float64) registry.State {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := s.X1, s.X2, s.Y1, s.Y2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + b1*x1 + b2*x2 - a1*y1 - a2*y2

		xn := buf[i+1]
		yn := b0*xn + b1*x0 + b2*x1 - a1*y0 - a2*y1

		buf[i] = y0
		buf[i+1] = yn

		x2, x1 = x0, xn
		y2, y1 = y0, yn
	}

	if i < n {
		x := buf[i]
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	return registry.State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}
