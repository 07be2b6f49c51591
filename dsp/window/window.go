// Package window generates the analysis windows used by the response and
// distortion measurements.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeFlatTop
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64 // equivalent noise bandwidth in bins
	HighestSidelobe float64 // dB
	CoherentGain    float64
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
	flatTopCoeffs  = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

var metadataByType = map[Type]Metadata{
	TypeRectangular: {Name: "Rectangular", ENBW: 1, HighestSidelobe: -13.3, CoherentGain: 1},
	TypeHann:        {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5},
	TypeHamming:     {Name: "Hamming", ENBW: 1.36, HighestSidelobe: -42.7, CoherentGain: 0.54},
	TypeBlackman:    {Name: "Blackman", ENBW: 1.73, HighestSidelobe: -58.1, CoherentGain: 0.42},
	TypeFlatTop:     {Name: "FlatTop", ENBW: 3.77, HighestSidelobe: -93, CoherentGain: 0.21557895},
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form (FFT framing) instead of the
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length, or nil for a
// non-positive length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	return metadataByType[t]
}

// ErrEmptyCoefficients is returned when a window has no coefficients.
var ErrEmptyCoefficients = errors.New("window: empty coefficients")

// CoherentGain returns the mean coefficient, the amplitude scaling a window
// applies to a bin-centred sinusoid.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, ErrEmptyCoefficients
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs)), nil
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
