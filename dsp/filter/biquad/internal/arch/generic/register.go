package generic

import (
	"github.com/cwbudde/algo-signalchain/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "generic",
		SIMDLevel:    cpu.SIMDNone,
		Priority:     0,
		ProcessBlock: processBlock,
	})
}

func processBlock(c registry.Coefficients, s registry.State, buf []float64) registry.State {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := s.X1, s.X2, s.Y1, s.Y2

	for i, x := range buf {
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	return registry.State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}
