package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-signalchain/dsp/signalchain"
)

var harmonicCfg = HarmonicConfig{
	Config:    Config{SampleRate: 48000, FFTSize: 4096},
	Frequency: 1000,
	Amplitude: 1,
}

func TestHarmonicsOfIdentity(t *testing.T) {
	res, err := Harmonics(identity, harmonicCfg)
	require.NoError(t, err)

	assert.InDelta(t, 85*48000.0/4096, res.FundamentalFreq, 1e-9)
	assert.Greater(t, res.FundamentalLevel, 0.0)
	assert.Less(t, res.THD, 1e-9)
	assert.Len(t, res.Harmonics, defaultMaxHarmonics)
}

func TestHarmonicsOfSquareLaw(t *testing.T) {
	square := ProcessorFunc(func(buf []float64) {
		for i, x := range buf {
			buf[i] = x + 0.1*x*x
		}
	})

	res, err := Harmonics(square, harmonicCfg)
	require.NoError(t, err)

	// x + 0.1x^2 with x = sin: second harmonic at 0.05.
	assert.InDelta(t, 0.05, res.THD, 1e-6)
	assert.InDelta(t, 0.05, res.EvenHD, 1e-6)
	assert.InDelta(t, 0, res.OddHD, 1e-6)
	assert.InDelta(t, 0.05, res.Harmonics[0], 1e-6)
	assert.InDelta(t, -26.02, res.THDdB, 0.01)
}

func TestHarmonicsOfDistortedChain(t *testing.T) {
	clean := signalchain.DefaultParams()
	_, proc := chainProcessor(t, 48000, clean)

	cfg := harmonicCfg
	cfg.Amplitude = 0.5
	cfg.Settle = 2

	res, err := Harmonics(proc, cfg)
	require.NoError(t, err)
	assert.Less(t, res.THD, 1e-4)

	dirty := clean
	dirty.Distortion = 1
	_, proc = chainProcessor(t, 48000, dirty)

	res, err = Harmonics(proc, cfg)
	require.NoError(t, err)
	assert.Greater(t, res.THD, 0.05)
	// tanh and the symmetric limiter are odd functions.
	assert.Greater(t, res.OddHD, 100*res.EvenHD)
}

func TestHarmonicsFrequencyRange(t *testing.T) {
	for _, f := range []float64{0, 2, 24000, 30000} {
		cfg := harmonicCfg
		cfg.Frequency = f
		_, err := Harmonics(identity, cfg)
		assert.Error(t, err, "frequency %v", f)
	}
}
