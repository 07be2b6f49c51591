package biquad

// Chain runs biquad sections in series. Section i feeds section i+1 and every
// section keeps its own Direct Form I memory, so a low-pass followed by a
// high-pass behaves exactly like two filters wired back to back.
type Chain struct {
	sections []Section
}

// NewChain builds a cascade with one section per coefficient set, in order.
// All memory starts at zero.
func NewChain(coeffs ...Coefficients) *Chain {
	sections := make([]Section, len(coeffs))
	for i, cf := range coeffs {
		sections[i].Coefficients = cf
	}

	return &Chain{sections: sections}
}

// NumSections reports how many sections the cascade holds.
func (c *Chain) NumSections() int { return len(c.sections) }

// Section exposes section i. The pointer aliases the chain's storage.
func (c *Chain) Section(i int) *Section { return &c.sections[i] }

// SetCoefficients swaps the coefficients of section i and leaves its memory
// alone. Retuning between blocks therefore continues from the current state
// instead of restarting from silence.
func (c *Chain) SetCoefficients(i int, coeffs Coefficients) {
	c.sections[i].Coefficients = coeffs
}

// ProcessSample pushes x through every section and returns the last output.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place, one whole section at a time. Because no
// section feeds back into an earlier one this matches ProcessSample applied
// sample by sample.
func (c *Chain) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset zeroes the memory of every section. Coefficients are kept.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// State snapshots the memory of every section as [x1, x2, y1, y2].
func (c *Chain) State() [][4]float64 {
	out := make([][4]float64, 0, len(c.sections))
	for i := range c.sections {
		out = append(out, c.sections[i].State())
	}

	return out
}

// SetState restores a snapshot taken with State. Extra entries are ignored
// and missing ones leave the corresponding sections untouched.
func (c *Chain) SetState(states [][4]float64) {
	n := min(len(states), len(c.sections))
	for i := range n {
		c.sections[i].SetState(states[i])
	}
}
