package response

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-signalchain/dsp/core"
	"github.com/cwbudde/algo-signalchain/dsp/window"
)

const (
	defaultMaxHarmonics = 9
	// captureBins is the half-width summed around each Hann-windowed peak.
	captureBins = 1
)

// HarmonicConfig configures [Harmonics].
type HarmonicConfig struct {
	Config
	// Frequency of the test sine; snapped to the nearest bin so the
	// measurement frame holds whole periods.
	Frequency float64
	Amplitude float64
	// MaxHarmonics bounds the harmonics considered (default 9).
	MaxHarmonics int
	// Settle is the number of blocks of FFTSize run through the processor
	// before the measured frame, letting filters and echoes build up.
	Settle int
}

// HarmonicResult holds the levels of the fundamental and its harmonics.
type HarmonicResult struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	// Harmonics[i] is the level of harmonic i+2 relative to the fundamental.
	Harmonics []float64
	THD       float64
	THDdB     float64
	OddHD     float64
	EvenHD    float64
}

// Harmonics drives p with a bin-centred sine and reports the harmonic
// distortion of the last frame, analysed with a periodic Hann window.
func Harmonics(p Processor, cfg HarmonicConfig) (HarmonicResult, error) {
	if err := cfg.validate(); err != nil {
		return HarmonicResult{}, err
	}

	n := cfg.FFTSize
	bin := int(math.Round(cfg.Frequency / cfg.BinHz()))
	if bin < 1 || bin >= n/2 {
		return HarmonicResult{}, fmt.Errorf("response: frequency %v Hz outside (0, %v)", cfg.Frequency, cfg.SampleRate/2)
	}
	if cfg.Amplitude == 0 {
		cfg.Amplitude = 1
	}
	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	freq := float64(bin) * cfg.BinHz()
	frame := make([]float64, n)
	phase := 0
	for block := 0; block <= max(cfg.Settle, 0); block++ {
		for i := range frame {
			frame[i] = cfg.Amplitude * math.Sin(2*math.Pi*float64(bin*(phase+i)%n)/float64(n))
		}
		phase += n
		p.ProcessInPlace(frame)
	}

	window.Apply(window.TypeHann, frame, window.WithPeriodic())

	mag, err := magnitudeSpectrum(frame)
	if err != nil {
		return HarmonicResult{}, err
	}

	fundamental := binLevel(mag, bin)
	res := HarmonicResult{FundamentalFreq: freq, FundamentalLevel: fundamental}
	if fundamental == 0 {
		return res, nil
	}

	var thd, odd, even float64
	for k := 2; k-2 < cfg.MaxHarmonics; k++ {
		hb := k * bin
		if hb+captureBins >= len(mag) {
			break
		}

		level := binLevel(mag, hb)
		res.Harmonics = append(res.Harmonics, level/fundamental)
		thd += level * level
		if k%2 == 0 {
			even += level * level
		} else {
			odd += level * level
		}
	}

	res.THD = math.Sqrt(thd) / fundamental
	res.THDdB = core.LinearToDB(res.THD)
	res.OddHD = math.Sqrt(odd) / fundamental
	res.EvenHD = math.Sqrt(even) / fundamental

	return res, nil
}

// binLevel returns the energy-summed magnitude around bin.
func binLevel(mag []float64, bin int) float64 {
	lo := max(bin-captureBins, 0)
	hi := min(bin+captureBins, len(mag)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += mag[i] * mag[i]
	}

	return math.Sqrt(sum)
}
