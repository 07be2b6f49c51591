package webdemo

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
	"unsafe"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-signalchain/dsp/core"
	"github.com/cwbudde/algo-signalchain/dsp/window"
)

const (
	spectrumFloorDB = -130.0
	spectrumEps     = 1e-12
)

// SpectrumParams configures the output spectrum analyzer.
type SpectrumParams struct {
	FFTSize   int     // 256..8192, power of two
	Overlap   float64 // [0.25, 0.95]
	Smoothing float64 // [0, 0.95], exponential over frames
	Window    string  // hann, hamming, blackman, flattop
}

type analyzer struct {
	cfg        SpectrumParams
	sampleRate float64

	plan       *algofft.Plan[complex128]
	win        []float64
	windowGain float64
	in, out    []complex128

	ring      []float64
	write     int
	filled    int
	sinceHop  int
	hop       int
	db        []float64
	hasFrames bool
}

// SetSpectrum enables the output analyzer with p. Sizes and windows outside
// the supported set fall back to 2048 and hann; an unknown window name is
// an error.
func (e *Engine) SetSpectrum(p SpectrumParams) error {
	a, err := newAnalyzer(p, e.chain.SampleRate())
	if err != nil {
		return err
	}
	e.spectrum = a
	return nil
}

// SpectrumCurveDB returns the smoothed output spectrum in dBFS at freqs,
// interpolating linearly between bins. Before the first full frame, or
// with the analyzer disabled, every value is the -130 dB floor.
func (e *Engine) SpectrumCurveDB(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	a := e.spectrum
	if a == nil || !a.hasFrames {
		for i := range out {
			out[i] = spectrumFloorDB
		}
		return out
	}

	last := len(a.db) - 1
	binHz := a.sampleRate / float64(a.cfg.FFTSize)

	for i, f := range freqs {
		bin := core.Clamp(f, 0, a.sampleRate/2) / binHz
		if !(bin > 0) {
			out[i] = a.db[0]
			continue
		}
		if bin >= float64(last) {
			out[i] = a.db[last]
			continue
		}

		base := int(bin)
		frac := bin - float64(base)
		out[i] = a.db[base] + frac*(a.db[base+1]-a.db[base])
	}

	return out
}

func newAnalyzer(p SpectrumParams, sampleRate float64) (*analyzer, error) {
	cfg := sanitizeSpectrumParams(p)

	winType, err := spectrumWindowType(cfg.Window)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("webdemo: spectrum fft plan: %w", err)
	}

	win := window.Generate(winType, cfg.FFTSize, window.WithPeriodic())
	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, err
	}

	a := &analyzer{
		cfg:        cfg,
		sampleRate: sampleRate,
		plan:       plan,
		win:        win,
		windowGain: gain,
		in:         make([]complex128, cfg.FFTSize),
		out:        make([]complex128, cfg.FFTSize),
		ring:       make([]float64, cfg.FFTSize),
		hop:        max(1, int(math.Round(float64(cfg.FFTSize)*(1-cfg.Overlap)))),
		db:         make([]float64, cfg.FFTSize/2+1),
	}
	a.reset()

	return a, nil
}

func (a *analyzer) reset() {
	core.Zero(a.ring)
	for i := range a.db {
		a.db[i] = spectrumFloorDB
	}
	a.write, a.filled, a.sinceHop = 0, 0, 0
	a.hasFrames = false
}

func (a *analyzer) push(block []float64) {
	n := len(a.ring)
	for _, x := range block {
		a.ring[a.write] = x
		a.write++
		if a.write >= n {
			a.write = 0
		}
		if a.filled < n {
			a.filled++
		}

		a.sinceHop++
		if a.filled == n && a.sinceHop >= a.hop {
			a.sinceHop = 0
			a.frame()
		}
	}
}

func (a *analyzer) frame() {
	n := len(a.ring)
	read := a.write
	for i := range n {
		a.in[i] = complex(a.ring[read]*a.win[i], 0)
		read++
		if read >= n {
			read = 0
		}
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return
	}

	norm := float64(n) * math.Max(a.windowGain, spectrumEps)
	last := len(a.db) - 1
	for k := 0; k <= last; k++ {
		mag := cmplx.Abs(a.out[k]) / norm
		if k > 0 && k < last {
			mag *= 2
		}

		v := math.Max(core.LinearToDB(math.Max(mag, spectrumEps)), spectrumFloorDB)
		if !a.hasFrames {
			a.db[k] = v
			continue
		}
		s := a.cfg.Smoothing
		a.db[k] = s*a.db[k] + (1-s)*v
	}

	a.hasFrames = true
}

func (a *analyzer) memoryUsageBytes() int {
	f := int(unsafe.Sizeof(float64(0)))
	c := int(unsafe.Sizeof(complex128(0)))
	return int(unsafe.Sizeof(*a)) +
		(len(a.win)+len(a.ring)+len(a.db))*f +
		(len(a.in)+len(a.out))*c
}

func sanitizeSpectrumParams(p SpectrumParams) SpectrumParams {
	cfg := p
	switch cfg.FFTSize {
	case 256, 512, 1024, 2048, 4096, 8192:
	default:
		cfg.FFTSize = 2048
	}

	cfg.Overlap = core.Clamp(cfg.Overlap, 0.25, 0.95)
	cfg.Smoothing = core.Clamp(cfg.Smoothing, 0, 0.95)

	cfg.Window = strings.ToLower(strings.TrimSpace(cfg.Window))
	if cfg.Window == "" {
		cfg.Window = "hann"
	}

	return cfg
}

func spectrumWindowType(name string) (window.Type, error) {
	switch name {
	case "hann":
		return window.TypeHann, nil
	case "hamming":
		return window.TypeHamming, nil
	case "blackman":
		return window.TypeBlackman, nil
	case "flattop":
		return window.TypeFlatTop, nil
	case "rectangular":
		return window.TypeRectangular, nil
	default:
		return 0, fmt.Errorf("webdemo: unsupported spectrum window: %s", name)
	}
}
