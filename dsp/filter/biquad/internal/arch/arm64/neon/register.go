//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-signalchain/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "neon",
		SIMDLevel:    cpu.SIMDNEON,
		Priority:     15,
		ProcessBlock: processBlock,
	})
}

// processBlock keeps the coefficients and memory in registers and walks the
// block two samples at a time.
func processBlock(c registry.Coefficients, s registry.State, buf []float64) registry.State {
	if len(buf) == 0 {
		return s
	}

	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := s.X1, s.X2, s.Y1, s.Y2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		in0, in1 := buf[i], buf[i+1]
		out0 := b0*in0 + b1*x1 + b2*x2 - a1*y1 - a2*y2
		out1 := b0*in1 + b1*in0 + b2*x1 - a1*out0 - a2*y1
		buf[i], buf[i+1] = out0, out1
		x2, x1 = in0, in1
		y2, y1 = out0, out1
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
