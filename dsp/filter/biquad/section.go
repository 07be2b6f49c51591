//nolint:funcorder
package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-signalchain/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients of one second-order section, normalized so that a0 == 1:
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64 // feedforward
	A1, A2     float64 // feedback
}

// Section is one biquad in Direct Form I: the last two inputs and the last
// two outputs are stored separately, which keeps retuning between blocks
// free of state transformation.
type Section struct {
	Coefficients

	x1, x2 float64
	y1, y2 float64
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockName     string
	processBlockInitOnce sync.Once
)

// NewSection returns a section with the given coefficients and silent memory.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample runs the recurrence for one input sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.B1*s.x1 + s.B2*s.x2 - s.A1*s.y1 - s.A2*s.y2
	s.x2, s.x1 = s.x1, x
	s.y2, s.y1 = s.y1, y

	return y
}

// ProcessBlock filters buf in place with the kernel selected for this CPU.
// The result is identical to calling ProcessSample on every element. It does
// not allocate.
func (s *Section) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	processBlockInitOnce.Do(initProcessBlockKernel)

	st := processBlockImpl(
		archregistry.Coefficients{B0: s.B0, B1: s.B1, B2: s.B2, A1: s.A1, A2: s.A2},
		archregistry.State{X1: s.x1, X2: s.x2, Y1: s.y1, Y2: s.y2},
		buf,
	)
	s.x1, s.x2, s.y1, s.y2 = st.X1, st.X2, st.Y1, st.Y2
}

// KernelName reports which block kernel ProcessBlock dispatches to, for
// example "avx2" or "generic".
func KernelName() string {
	processBlockInitOnce.Do(initProcessBlockKernel)
	return processBlockName
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil || entry.ProcessBlock == nil {
		panic("biquad: no usable ProcessBlock kernel registered")
	}

	processBlockImpl = entry.ProcessBlock
	processBlockName = entry.Name
}

// Reset silences the section. Coefficients are kept.
func (s *Section) Reset() {
	s.x1, s.x2, s.y1, s.y2 = 0, 0, 0, 0
}

// State returns the memory as [x1, x2, y1, y2].
func (s *Section) State() [4]float64 {
	return [4]float64{s.x1, s.x2, s.y1, s.y2}
}

// SetState restores memory captured by State.
func (s *Section) SetState(state [4]float64) {
	s.x1, s.x2, s.y1, s.y2 = state[0], state[1], state[2], state[3]
}
