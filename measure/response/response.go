package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-signalchain/dsp/core"
)

var (
	// ErrInvalidFFTSize is returned for FFT sizes that are not a power of two >= 8.
	ErrInvalidFFTSize = errors.New("fft size must be a power of two >= 8")
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("sample rate must be finite and > 0")
)

const minFFTSize = 8

// Processor rewrites a block of samples in place.
type Processor interface {
	ProcessInPlace(buf []float64)
}

// ProcessorFunc adapts a function to [Processor].
type ProcessorFunc func(buf []float64)

// ProcessInPlace calls f(buf).
func (f ProcessorFunc) ProcessInPlace(buf []float64) { f(buf) }

// Config holds the analysis settings shared by all measurements.
type Config struct {
	SampleRate float64
	FFTSize    int
}

func (cfg Config) validate() error {
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("response: %w: %v", ErrInvalidSampleRate, cfg.SampleRate)
	}
	n := cfg.FFTSize
	if n < minFFTSize || n&(n-1) != 0 {
		return fmt.Errorf("response: %w: %d", ErrInvalidFFTSize, n)
	}
	return nil
}

// BinHz returns the frequency spacing of one FFT bin.
func (cfg Config) BinHz() float64 {
	return cfg.SampleRate / float64(cfg.FFTSize)
}

// FrequencyResponse is the magnitude of an impulse response over the bins
// [0, FFTSize/2].
type FrequencyResponse struct {
	Config
	Magnitude []float64
}

// Freq returns the centre frequency of bin i.
func (r *FrequencyResponse) Freq(i int) float64 {
	return float64(i) * r.BinHz()
}

// MagnitudeAt returns the magnitude of the bin nearest to freqHz.
func (r *FrequencyResponse) MagnitudeAt(freqHz float64) float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	bin := core.ClampInt(int(math.Round(freqHz/r.BinHz())), 0, len(r.Magnitude)-1)
	return r.Magnitude[bin]
}

// MagnitudeDBAt returns MagnitudeAt in dB.
func (r *FrequencyResponse) MagnitudeDBAt(freqHz float64) float64 {
	return core.LinearToDB(r.MagnitudeAt(freqHz))
}

// ImpulseResponse feeds a unit impulse followed by silence, FFTSize samples
// in total, through p and returns the output.
func ImpulseResponse(p Processor, cfg Config) ([]float64, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ir := make([]float64, cfg.FFTSize)
	ir[0] = 1
	p.ProcessInPlace(ir)

	return ir, nil
}

// Measure returns the magnitude response of p. The processor should be
// linear and time-invariant over FFTSize samples for the result to be
// meaningful; clipping or echo paths longer than the FFT show up as
// distortion of the curve.
func Measure(p Processor, cfg Config) (*FrequencyResponse, error) {
	ir, err := ImpulseResponse(p, cfg)
	if err != nil {
		return nil, err
	}

	mag, err := magnitudeSpectrum(ir)
	if err != nil {
		return nil, err
	}

	return &FrequencyResponse{Config: cfg, Magnitude: mag}, nil
}

// magnitudeSpectrum returns |X[k]| for k in [0, len(x)/2].
func magnitudeSpectrum(x []float64) ([]float64, error) {
	n := len(x)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}
