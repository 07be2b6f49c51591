package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-signalchain/dsp/signalchain"
	"github.com/cwbudde/algo-signalchain/measure/level"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseFlagsDefaults(t *testing.T) {
	o, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 48000.0, o.sampleRate)
	assert.Equal(t, 128, o.blockSize)
	assert.Equal(t, "sine", o.signal)
	assert.Equal(t, signalchain.DefaultParams(), o.params)
	assert.False(t, o.response)
}

func TestParseFlagsParams(t *testing.T) {
	o, err := parseFlags([]string{
		"-gain", "2", "-lpf", "3000", "-hpf", "80",
		"-delay-time", "0.3", "-delay-feedback", "1.5", "-delay-mix", "0.4",
		"-distortion", "0.7", "-v",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, signalchain.Params{
		Gain: 2, LowpassCutoff: 3000, HighpassCutoff: 80,
		DelayTime: 0.3, DelayFeedback: 1.5, DelayMix: 0.4, Distortion: 0.7,
	}, o.params)
	assert.True(t, o.verbose)
}

func TestParseFlagsUnknown(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-bogus"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Usage: fxrender")
}

func writePreset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestPresetWithFlagOverride(t *testing.T) {
	path := writePreset(t, `{"gain": 0.5, "distortion": 0.3, "delay_mix": 0.2}`)

	o, err := parseFlags([]string{"-preset", path, "-distortion", "0.9"}, io.Discard)
	require.NoError(t, err)

	want := signalchain.DefaultParams()
	want.Gain = 0.5
	want.DelayMix = 0.2
	want.Distortion = 0.9
	assert.Equal(t, want, o.params)
}

func TestPresetErrors(t *testing.T) {
	_, err := parseFlags([]string{"-preset", filepath.Join(t.TempDir(), "missing.json")}, io.Discard)
	require.Error(t, err)

	_, err = loadPreset(writePreset(t, `{"gian": 1}`), signalchain.DefaultParams())
	require.ErrorContains(t, err, "decode preset")

	_, err = loadPreset(writePreset(t, `{"gain": "loud"}`), signalchain.DefaultParams())
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	imp, err := generate("impulse", 8, 48000, 1000, 0.7, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.7, 0, 0, 0, 0, 0, 0, 0}, imp)

	dc, err := generate("DC", 3, 48000, 0, 0.25, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.25, 0.25}, dc)

	sine, err := generate("sine", 48, 48000, 1000, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, sine[12], 1e-12)

	a, err := generate("noise", 256, 48000, 0, 0.5, 7)
	require.NoError(t, err)
	b, _ := generate("noise", 256, 48000, 0, 0.5, 7)
	assert.Equal(t, a, b)
	for _, v := range a {
		assert.LessOrEqual(t, v, 0.5)
		assert.GreaterOrEqual(t, v, -0.5)
	}

	_, err = generate("square", 8, 48000, 1000, 1, 1)
	require.ErrorContains(t, err, "unknown signal")
	_, err = generate("sine", 0, 48000, 1000, 1, 1)
	require.Error(t, err)
}

func TestRenderBlocksMatchesSingleCall(t *testing.T) {
	p := signalchain.Params{Gain: 1, LowpassCutoff: 5000, HighpassCutoff: 50, DelayTime: 0.005, DelayMix: 0.5, Distortion: 0.4}
	in, err := generate("noise", 1000, 48000, 0, 0.8, 3)
	require.NoError(t, err)

	blocked := append([]float64(nil), in...)
	c, err := signalchain.New(48000)
	require.NoError(t, err)
	meter := level.NewMeter(signalchain.OutputCeiling)
	assert.Equal(t, 8, renderBlocks(c, blocked, p, meter))
	assert.Equal(t, 1000, meter.Result().Samples)

	whole := append([]float64(nil), in...)
	c, err = signalchain.New(48000)
	require.NoError(t, err)
	c.Process(whole, p)

	assert.InDeltaSlice(t, whole, blocked, 1e-12)
}

func TestRunPrintsStatsAndResponse(t *testing.T) {
	o, err := parseFlags([]string{
		"-duration", "0.05", "-signal", "sine", "-gain", "4",
		"-lpf", "2000", "-response", "-fft", "4096", "-dump", "3",
	}, io.Discard)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(o, quietLogger(), &out))

	text := out.String()
	assert.Contains(t, text, "Peak dBFS")
	assert.Contains(t, text, "output")
	assert.Contains(t, text, "delay buffer 48000 samples (384000 bytes)")
	assert.Contains(t, text, "Measured dB")
	assert.Contains(t, text, "2000")
	assert.Equal(t, 1, strings.Count(text, "     0  +0.000000"))
}

func TestRunErrors(t *testing.T) {
	o, err := parseFlags([]string{"-rate", "0"}, io.Discard)
	require.NoError(t, err)
	require.ErrorIs(t, run(o, quietLogger(), io.Discard), signalchain.ErrInvalidSampleRate)

	o, err = parseFlags([]string{"-signal", "chirp"}, io.Discard)
	require.NoError(t, err)
	require.Error(t, run(o, quietLogger(), io.Discard))

	o, err = parseFlags([]string{"-duration", "0.01", "-response", "-fft", "1000"}, io.Discard)
	require.NoError(t, err)
	require.Error(t, run(o, quietLogger(), io.Discard))
}
