package signalchain

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/cwbudde/algo-signalchain/dsp/core"
	"github.com/cwbudde/algo-signalchain/dsp/delay"
	"github.com/cwbudde/algo-signalchain/dsp/effects"
	"github.com/cwbudde/algo-signalchain/dsp/filter/biquad"
	"github.com/cwbudde/algo-signalchain/dsp/filter/design"
)

const (
	// LowpassMinHz is the lowest lowpass cutoff.
	LowpassMinHz = 100.0
	// HighpassMinHz is the lowest highpass cutoff.
	HighpassMinHz = 20.0
	// MaxCutoffRatio bounds both cutoffs to this fraction of the sample rate.
	MaxCutoffRatio = 0.45
	// FilterQ is the quality factor of both filters.
	FilterQ = 0.707
	// OutputCeiling is the hard limiter level.
	OutputCeiling = 0.95
	// DelayCapacitySeconds is the length of the delay buffer.
	DelayCapacitySeconds = 1.0
)

const (
	lowpassSection  = 0
	highpassSection = 1
	bytesPerSample  = int(unsafe.Sizeof(float64(0)))
)

// ErrInvalidSampleRate is returned by [New] for non-positive or non-finite rates.
var ErrInvalidSampleRate = errors.New("sample rate must be finite and > 0")

// Chain is a mono effects chain bound to one sample rate.
type Chain struct {
	sampleRate float64
	cfg        core.ProcessorConfig

	gain     float64
	softclip *effects.SoftClip
	filters  *biquad.Chain
	delay    *effects.FeedbackDelay
	limiter  *effects.HardLimiter
}

// New creates a chain for sampleRate with zeroed filter memory and a silent
// delay buffer of max(1, round(sampleRate)) samples. Options set the
// expected block size; a WithSampleRate option is ignored in favour of
// sampleRate.
func New(sampleRate float64, opts ...core.ProcessorOption) (*Chain, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("signalchain: %w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := core.ApplyProcessorOptions(opts...)
	cfg.SampleRate = sampleRate

	fd, err := effects.NewFeedbackDelay(sampleRate, DelayCapacitySeconds)
	if err != nil {
		return nil, fmt.Errorf("signalchain: %w", err)
	}

	c := &Chain{
		sampleRate: sampleRate,
		cfg:        cfg,
		softclip:   effects.NewSoftClip(),
		filters:    biquad.NewChain(biquad.Coefficients{}, biquad.Coefficients{}),
		delay:      fd,
		limiter:    effects.NewHardLimiter(OutputCeiling),
	}
	c.Prepare(DefaultParams())

	return c, nil
}

// Prepare derives every per-block quantity from p: gain, distortion drive,
// both filter coefficient sets and the delay configuration. Filter memory
// and the delay buffer are kept.
func (c *Chain) Prepare(p Params) {
	p = p.sanitized()

	c.gain = p.Gain
	c.softclip.SetAmount(p.Distortion)
	c.filters.SetCoefficients(lowpassSection, LowpassCoefficients(p.LowpassCutoff, c.sampleRate))
	c.filters.SetCoefficients(highpassSection, HighpassCoefficients(p.HighpassCutoff, c.sampleRate))
	c.delay.Configure(p.DelayTime, p.DelayFeedback, p.DelayMix)
}

// Process runs buf through the chain in place using p for the whole block.
//
// Stages run block-wise in chain order. No stage feeds back into an earlier
// one, so the result equals running every sample through all stages in turn.
func (c *Chain) Process(buf []float64, p Params) {
	c.Prepare(p)
	if len(buf) == 0 {
		return
	}

	effects.ApplyGain(buf, c.gain)
	c.softclip.ProcessInPlace(buf)
	c.filters.ProcessBlock(buf)
	c.delay.ProcessInPlace(buf)
	c.limiter.ProcessInPlace(buf)
}

// ProcessSample runs one sample through the chain with the settings of the
// last Process or Prepare call.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	x = c.softclip.ProcessSample(x)
	x = c.filters.ProcessSample(x)
	x = c.delay.ProcessSample(x)
	return c.limiter.ProcessSample(x)
}

// Reset clears filter memory and the delay buffer and rewinds the write
// position. Sample rate, capacity and the prepared parameters are kept.
func (c *Chain) Reset() {
	c.filters.Reset()
	c.delay.Reset()
}

// SampleRate returns the sample rate in Hz.
func (c *Chain) SampleRate() float64 { return c.sampleRate }

// BlockSize returns the expected maximum block size from the options.
func (c *Chain) BlockSize() int { return c.cfg.BlockSize }

// Config returns the processor settings, with SampleRate set to the chain's rate.
func (c *Chain) Config() core.ProcessorConfig { return c.cfg }

// DelayLength returns the delay buffer length in samples.
func (c *Chain) DelayLength() int { return c.delay.Len() }

// WritePos returns the delay line's next write index.
func (c *Chain) WritePos() int { return c.delay.WritePos() }

// Filters exposes the lowpass/highpass cascade with the coefficients of the
// last Prepare. It is intended for response analysis, not for processing.
func (c *Chain) Filters() *biquad.Chain { return c.filters }

// BufferSizeBytes returns the delay buffer length in bytes.
func (c *Chain) BufferSizeBytes() int {
	return c.delay.Len() * bytesPerSample
}

// MemoryUsageBytes approximates the heap held by the chain: its own struct,
// every owned stage and the delay buffer capacity.
func (c *Chain) MemoryUsageBytes() int {
	n := unsafe.Sizeof(*c) +
		unsafe.Sizeof(effects.SoftClip{}) +
		unsafe.Sizeof(biquad.Chain{}) +
		uintptr(c.filters.NumSections())*unsafe.Sizeof(biquad.Section{}) +
		unsafe.Sizeof(effects.FeedbackDelay{}) +
		unsafe.Sizeof(delay.Line{}) +
		unsafe.Sizeof(effects.HardLimiter{})

	return int(n) + c.delay.Cap()*bytesPerSample
}

// LowpassCoefficients designs the chain's lowpass for cutoff, clamped to
// [LowpassMinHz, MaxCutoffRatio*sampleRate]. The upper bound wins when the
// range is empty.
func LowpassCoefficients(cutoff, sampleRate float64) biquad.Coefficients {
	f := core.Clamp(cutoff, LowpassMinHz, MaxCutoffRatio*sampleRate)
	return design.Lowpass(f, FilterQ, sampleRate)
}

// HighpassCoefficients designs the chain's highpass for cutoff, clamped to
// [HighpassMinHz, MaxCutoffRatio*sampleRate].
func HighpassCoefficients(cutoff, sampleRate float64) biquad.Coefficients {
	f := core.Clamp(cutoff, HighpassMinHz, MaxCutoffRatio*sampleRate)
	return design.Highpass(f, FilterQ, sampleRate)
}
