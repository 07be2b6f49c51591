// Package level accumulates block-wise level statistics of a rendered
// signal: peak, RMS, DC offset and how many samples sat at a ceiling.
package level

import (
	"math"

	"github.com/cwbudde/algo-signalchain/dsp/core"
)

// Stats holds the accumulated levels. dB fields are -Inf for silence.
type Stats struct {
	Samples       int
	Peak          float64
	PeakDB        float64
	PeakPos       int
	RMS           float64
	RMSDB         float64
	DC            float64
	CrestFactorDB float64
	// AtCeiling counts samples with |x| >= the meter's ceiling.
	AtCeiling int
}

// Meter accumulates Stats across blocks. The zero value is ready to use
// with an infinite ceiling.
type Meter struct {
	ceiling float64
	hasCeil bool

	n         int
	sum       float64
	comp      float64 // Kahan compensation for sum
	sumSq     float64
	peak      float64
	peakPos   int
	atCeiling int
}

// NewMeter returns a meter counting samples at or above ceiling.
func NewMeter(ceiling float64) *Meter {
	return &Meter{ceiling: math.Abs(ceiling), hasCeil: true}
}

// Update adds a block of samples.
func (m *Meter) Update(block []float64) {
	for _, x := range block {
		y := x - m.comp
		t := m.sum + y
		m.comp = (t - m.sum) - y
		m.sum = t

		m.sumSq += x * x

		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}
		if m.hasCeil && a >= m.ceiling {
			m.atCeiling++
		}
		m.n++
	}
}

// Result returns the statistics of everything passed to Update.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return Stats{PeakDB: math.Inf(-1), RMSDB: math.Inf(-1), CrestFactorDB: math.Inf(-1)}
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)

	crest := math.Inf(-1)
	if rms > 0 {
		crest = core.LinearToDB(m.peak / rms)
	}

	return Stats{
		Samples:       m.n,
		Peak:          m.peak,
		PeakDB:        core.LinearToDB(m.peak),
		PeakPos:       m.peakPos,
		RMS:           rms,
		RMSDB:         core.LinearToDB(rms),
		DC:            m.sum / nf,
		CrestFactorDB: crest,
		AtCeiling:     m.atCeiling,
	}
}

// Reset clears the accumulated data and keeps the ceiling.
func (m *Meter) Reset() {
	*m = Meter{ceiling: m.ceiling, hasCeil: m.hasCeil}
}

// Measure is a one-shot Meter over signal.
func Measure(signal []float64, ceiling float64) Stats {
	m := NewMeter(ceiling)
	m.Update(signal)
	return m.Result()
}
