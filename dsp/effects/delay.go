package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-signalchain/dsp/delay"
)

const (
	// delayActiveThreshold is the delay time (seconds) and mix at or below
	// which the echo path is disabled.
	delayActiveThreshold = 0.001
	// feedbackScale and maxFeedback bound the recirculation gain far below 1
	// regardless of the requested feedback.
	feedbackScale = 0.25
	maxFeedback   = 0.6
	// wetScale maps mix=1 to an even dry/wet blend.
	wetScale = 0.5
)

// FeedbackDelay is an echo built on a fixed-capacity delay.Line.
//
// Per sample, when enabled:
//
//	delayed = line[(pos - delaySamples) mod len]
//	line[pos] = x + delayed*fb
//	y = x*(1 - mix/2) + delayed*mix/2
//
// When disabled it writes silence so stale history drains. The write
// position advances by one slot per sample either way.
type FeedbackDelay struct {
	sampleRate float64
	line       *delay.Line

	delaySamples int
	feedback     float64
	dry, wet     float64
	enabled      bool
}

// NewFeedbackDelay creates a delay holding capacitySeconds of audio
// (at least one slot).
func NewFeedbackDelay(sampleRate, capacitySeconds float64) (*FeedbackDelay, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay sample rate must be > 0: %f", sampleRate)
	}

	line, err := delay.New(delay.SizeForDuration(capacitySeconds, sampleRate))
	if err != nil {
		return nil, err
	}

	d := &FeedbackDelay{sampleRate: sampleRate, line: line}
	d.Configure(0, 0, 0)

	return d, nil
}

// Configure derives the per-block delay parameters.
//
// delaySamples = trunc(delayTime*sampleRate) clamped to [1, len-1], with
// the lower bound winning on a one-slot line. The feedback gain is
// min(feedback*0.25, 0.6); negative feedback inverts the echo polarity.
// A NaN or -Inf feedback disables recirculation. mix is clamped to [0, 1].
func (d *FeedbackDelay) Configure(delayTime, feedback, mix float64) {
	d.delaySamples = d.samplesFor(delayTime)

	fb := math.Min(feedback*feedbackScale, maxFeedback)
	if math.IsNaN(fb) || math.IsInf(fb, -1) {
		fb = 0
	}
	d.feedback = fb

	if !(mix > 0) {
		mix = 0
	}
	if mix > 1 {
		mix = 1
	}
	d.dry = 1 - mix*wetScale
	d.wet = mix * wetScale

	d.enabled = delayTime > delayActiveThreshold && mix > delayActiveThreshold
}

func (d *FeedbackDelay) samplesFor(delayTime float64) int {
	upper := d.line.Len() - 1
	v := delayTime * d.sampleRate

	var n int
	switch {
	case !(v >= 1): // also catches NaN
		n = 1
	case v >= float64(upper):
		n = upper
	default:
		n = int(v)
	}

	if n < 1 {
		n = 1
	}

	return n
}

// ProcessSample runs one sample through the echo path.
func (d *FeedbackDelay) ProcessSample(x float64) float64 {
	if !d.enabled {
		d.line.Write(0)
		return x
	}

	delayed := d.line.Read(d.delaySamples)
	d.line.Write(x + delayed*d.feedback)

	return x*d.dry + delayed*d.wet
}

// ProcessInPlace applies the delay to buf in place.
func (d *FeedbackDelay) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}

// Reset zeroes the buffer and rewinds the write position.
func (d *FeedbackDelay) Reset() {
	d.line.Reset()
}

// SampleRate returns sample rate in Hz.
func (d *FeedbackDelay) SampleRate() float64 { return d.sampleRate }

// Len returns the buffer length in samples.
func (d *FeedbackDelay) Len() int { return d.line.Len() }

// Cap returns the buffer capacity in samples.
func (d *FeedbackDelay) Cap() int { return d.line.Cap() }

// WritePos returns the index of the next slot to be written.
func (d *FeedbackDelay) WritePos() int { return d.line.WritePos() }

// DelaySamples returns the delay length derived by the last Configure.
func (d *FeedbackDelay) DelaySamples() int { return d.delaySamples }

// Feedback returns the effective recirculation gain.
func (d *FeedbackDelay) Feedback() float64 { return d.feedback }

// Enabled reports whether the echo path is active.
func (d *FeedbackDelay) Enabled() bool { return d.enabled }
