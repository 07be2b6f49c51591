// Command fxrender renders a test signal through the effects chain and
// prints level statistics, optionally followed by the chain's frequency
// response.
//
// Usage:
//
//	fxrender [flags]
//
// Examples:
//
//	fxrender -signal sine -freq 440 -distortion 0.6
//	fxrender -signal impulse -delay-time 0.25 -delay-mix 0.5 -dump 16
//	fxrender -preset warm.json -response
//	fxrender -lpf 2000 -hpf 200 -response -v
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(opts, log, os.Stdout); err != nil {
		log.WithError(err).Error("render failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
