// Package webdemo hosts a signalchain.Chain behind a float32 block API,
// the sample format browsers and most audio hosts hand over.
package webdemo

import (
	"fmt"
	"unsafe"

	"github.com/cwbudde/algo-signalchain/dsp/core"
	"github.com/cwbudde/algo-signalchain/dsp/effects"
	"github.com/cwbudde/algo-signalchain/dsp/signalchain"
)

// Engine converts host blocks to float64, runs them through the chain and
// writes the result back. The scratch buffer is sized to the configured
// block size and only grows when a larger block arrives.
type Engine struct {
	chain   *signalchain.Chain
	params  signalchain.Params
	scratch []float64
	peak    float64

	spectrum *analyzer
}

// NewEngine creates an engine at sampleRate with default parameters and
// the spectrum analyzer disabled.
func NewEngine(sampleRate float64, opts ...core.ProcessorOption) (*Engine, error) {
	chain, err := signalchain.New(sampleRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("webdemo: %w", err)
	}

	return &Engine{
		chain:   chain,
		params:  signalchain.DefaultParams(),
		scratch: make([]float64, chain.BlockSize()),
	}, nil
}

// SetParams replaces the parameters used by subsequent Process calls.
func (e *Engine) SetParams(p signalchain.Params) {
	e.params = p
	e.chain.Prepare(p)
}

// Params returns the current parameters.
func (e *Engine) Params() signalchain.Params { return e.params }

// Process runs buf through the chain in place.
func (e *Engine) Process(buf []float32) {
	e.scratch = core.EnsureLen(e.scratch, len(buf))
	n := core.Float32To64(e.scratch, buf)
	block := e.scratch[:n]

	e.chain.Process(block, e.params)
	e.peak = effects.Peak(block)
	if e.spectrum != nil {
		e.spectrum.push(block)
	}

	core.Float64To32(buf, block)
}

// ProcessWith sets p and processes buf in one call.
func (e *Engine) ProcessWith(buf []float32, p signalchain.Params) {
	e.SetParams(p)
	e.Process(buf)
}

// Reset clears the chain state and the output meters.
func (e *Engine) Reset() {
	e.chain.Reset()
	e.peak = 0
	if e.spectrum != nil {
		e.spectrum.reset()
	}
}

// Peak returns the absolute peak of the last processed block.
func (e *Engine) Peak() float64 { return e.peak }

// SampleRate returns the chain sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.chain.SampleRate() }

// BufferSizeBytes returns the size of the chain's delay buffer in bytes.
func (e *Engine) BufferSizeBytes() int { return e.chain.BufferSizeBytes() }

// MemoryUsageBytes returns the chain footprint plus the engine's own
// buffers.
func (e *Engine) MemoryUsageBytes() int {
	n := e.chain.MemoryUsageBytes() +
		int(unsafe.Sizeof(*e)) +
		cap(e.scratch)*int(unsafe.Sizeof(float64(0)))
	if e.spectrum != nil {
		n += e.spectrum.memoryUsageBytes()
	}
	return n
}

// ResponseCurveDB returns the filter magnitude response in dB at freqs for
// the current parameters.
func (e *Engine) ResponseCurveDB(freqs []float64) []float64 {
	filters := e.chain.Filters()
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = filters.MagnitudeDB(f, e.chain.SampleRate())
	}
	return out
}
