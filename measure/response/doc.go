// Package response measures a block processor from the outside: the
// magnitude response of its impulse response and the harmonic distortion
// it adds to a sine.
//
// Processors are driven through [Processor], so a signalchain.Chain can be
// measured with fixed parameters by wrapping its Process method in a
// [ProcessorFunc]. Measurements are offline; they allocate and plan FFTs
// and must not run on an audio thread.
package response
