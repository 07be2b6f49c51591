package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-signalchain/dsp/core"
	"github.com/cwbudde/algo-signalchain/dsp/filter/biquad"
	"github.com/cwbudde/algo-signalchain/dsp/signalchain"
	"github.com/cwbudde/algo-signalchain/measure/level"
	"github.com/cwbudde/algo-signalchain/measure/response"
)

var responseFreqs = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 15000, 20000}

func run(o options, log *logrus.Logger, w io.Writer) error {
	chain, err := signalchain.New(o.sampleRate, core.WithBlockSize(o.blockSize))
	if err != nil {
		return err
	}

	n := int(math.Round(o.duration * o.sampleRate))
	in, err := generate(o.signal, n, o.sampleRate, o.freq, o.amplitude, o.seed)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"rate":    o.sampleRate,
		"block":   chain.BlockSize(),
		"latency": chain.Config().BlockDuration(),
		"samples": n,
		"signal":  o.signal,
		"delay":   chain.DelayLength(),
		"kernel":  biquad.KernelName(),
	}).Debug("chain ready")
	log.WithFields(logrus.Fields{
		"gain":           o.params.Gain,
		"lpf":            o.params.LowpassCutoff,
		"hpf":            o.params.HighpassCutoff,
		"delay_time":     o.params.DelayTime,
		"delay_feedback": o.params.DelayFeedback,
		"delay_mix":      o.params.DelayMix,
		"distortion":     o.params.Distortion,
	}).Debug("parameters")

	out := append([]float64(nil), in...)
	meter := level.NewMeter(signalchain.OutputCeiling)
	blocks := renderBlocks(chain, out, o.params, meter)
	log.WithField("blocks", blocks).Debug("rendered")

	printStats(w, level.Measure(in, signalchain.OutputCeiling), meter.Result(), chain)

	if o.dump > 0 {
		printSamples(w, out[:min(o.dump, len(out))])
	}

	if o.response {
		if err := printResponse(w, o); err != nil {
			return err
		}
	}

	return nil
}

// renderBlocks feeds buf to chain in host-sized blocks, metering each
// output block, and returns the number of blocks processed.
func renderBlocks(chain *signalchain.Chain, buf []float64, p signalchain.Params, meter *level.Meter) int {
	size := chain.BlockSize()
	blocks := 0
	for start := 0; start < len(buf); start += size {
		block := buf[start:min(start+size, len(buf))]
		chain.Process(block, p)
		meter.Update(block)
		blocks++
	}
	return blocks
}

func generate(kind string, n int, sampleRate, freq, amp float64, seed int64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("signal length must be > 0: %d samples", n)
	}

	out := make([]float64, n)
	switch strings.ToLower(kind) {
	case "impulse":
		out[0] = amp
	case "sine":
		step := 2 * math.Pi * freq / sampleRate
		for i := range out {
			out[i] = amp * math.Sin(step*float64(i))
		}
	case "noise":
		rng := rand.New(rand.NewSource(seed))
		for i := range out {
			out[i] = amp * (rng.Float64()*2 - 1)
		}
	case "dc":
		for i := range out {
			out[i] = amp
		}
	default:
		return nil, fmt.Errorf("unknown signal %q (impulse, sine, noise, dc)", kind)
	}

	return out, nil
}

func printStats(w io.Writer, in, out level.Stats, chain *signalchain.Chain) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Signal\tSamples\tPeak\tPeak dBFS\tRMS dBFS\tCrest dB\tDC\tAt ceiling\n")
	fmt.Fprintf(tw, "------\t-------\t----\t---------\t--------\t--------\t--\t----------\n")
	for _, row := range []struct {
		name string
		s    level.Stats
	}{{"input", in}, {"output", out}} {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.2f\t%.2f\t%.2f\t%+.4f\t%d\n",
			row.name, row.s.Samples, row.s.Peak, row.s.PeakDB, row.s.RMSDB,
			row.s.CrestFactorDB, row.s.DC, row.s.AtCeiling)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nsample rate %.0f Hz, delay buffer %d samples (%d bytes), memory %d bytes\n",
		chain.SampleRate(), chain.DelayLength(), chain.BufferSizeBytes(), chain.MemoryUsageBytes())
}

func printSamples(w io.Writer, samples []float64) {
	fmt.Fprintln(w)
	for i, v := range samples {
		fmt.Fprintf(w, "%6d  %+.6f\n", i, v)
	}
}

// printResponse measures a fresh chain with the configured parameters, so
// the rendered signal's state does not leak into the impulse response.
func printResponse(w io.Writer, o options) error {
	chain, err := signalchain.New(o.sampleRate)
	if err != nil {
		return err
	}
	chain.Prepare(o.params)

	r, err := response.Measure(response.ProcessorFunc(func(buf []float64) {
		chain.Process(buf, o.params)
	}), response.Config{SampleRate: o.sampleRate, FFTSize: o.fftSize})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\nFreq Hz\tMeasured dB\tFilters dB\t\n")
	for _, f := range responseFreqs {
		if f >= o.sampleRate/2 {
			break
		}
		fmt.Fprintf(tw, "%.0f\t%.2f\t%.2f\t\n", f, r.MagnitudeDBAt(f), chain.Filters().MagnitudeDB(f, o.sampleRate))
	}
	return tw.Flush()
}
