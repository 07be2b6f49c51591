package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-signalchain/dsp/signalchain"
)

type options struct {
	sampleRate float64
	blockSize  int
	duration   float64
	signal     string
	freq       float64
	amplitude  float64
	seed       int64

	params   signalchain.Params
	preset   string
	response bool
	fftSize  int
	dump     int
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	def := signalchain.DefaultParams()

	fs := flag.NewFlagSet("fxrender", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Float64Var(&o.sampleRate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&o.blockSize, "block", 128, "host block size in samples")
	fs.Float64Var(&o.duration, "duration", 1, "signal length in seconds")
	fs.StringVar(&o.signal, "signal", "sine", "test signal: impulse, sine, noise, dc")
	fs.Float64Var(&o.freq, "freq", 1000, "sine frequency in Hz")
	fs.Float64Var(&o.amplitude, "amp", 0.5, "signal amplitude")
	fs.Int64Var(&o.seed, "seed", 1, "noise seed")

	fs.Float64Var(&o.params.Gain, "gain", def.Gain, "linear input gain")
	fs.Float64Var(&o.params.LowpassCutoff, "lpf", def.LowpassCutoff, "lowpass cutoff in Hz")
	fs.Float64Var(&o.params.HighpassCutoff, "hpf", def.HighpassCutoff, "highpass cutoff in Hz")
	fs.Float64Var(&o.params.DelayTime, "delay-time", def.DelayTime, "delay time in seconds")
	fs.Float64Var(&o.params.DelayFeedback, "delay-feedback", def.DelayFeedback, "delay feedback (scaled by 0.25, capped at 0.6)")
	fs.Float64Var(&o.params.DelayMix, "delay-mix", def.DelayMix, "delay mix in [0,1]")
	fs.Float64Var(&o.params.Distortion, "distortion", def.Distortion, "soft-clip amount")

	fs.StringVar(&o.preset, "preset", "", "JSON preset file; explicit flags override its values")
	fs.BoolVar(&o.response, "response", false, "print the frequency response of the configured chain")
	fs.IntVar(&o.fftSize, "fft", 8192, "FFT size for -response")
	fs.IntVar(&o.dump, "dump", 0, "print the first N output samples")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fxrender [flags]\n\n")
		fmt.Fprintf(stderr, "Renders a test signal through gain, distortion, filters, delay and limiter.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fxrender -signal sine -freq 440 -distortion 0.6\n")
		fmt.Fprintf(stderr, "  fxrender -preset warm.json -response\n")
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.preset == "" {
		return o, nil
	}

	p, err := loadPreset(o.preset, def)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return o, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "gain":
			p.Gain = o.params.Gain
		case "lpf":
			p.LowpassCutoff = o.params.LowpassCutoff
		case "hpf":
			p.HighpassCutoff = o.params.HighpassCutoff
		case "delay-time":
			p.DelayTime = o.params.DelayTime
		case "delay-feedback":
			p.DelayFeedback = o.params.DelayFeedback
		case "delay-mix":
			p.DelayMix = o.params.DelayMix
		case "distortion":
			p.Distortion = o.params.Distortion
		}
	})
	o.params = p

	return o, nil
}

// loadPreset decodes a JSON preset over base; keys missing from the file
// keep base's values.
func loadPreset(path string, base signalchain.Params) (signalchain.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("open preset: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&base); err != nil {
		return base, fmt.Errorf("decode preset %s: %w", path, err)
	}

	return base, nil
}
