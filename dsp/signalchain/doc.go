// Package signalchain implements a mono real-time effects chain:
//
//	gain -> soft-clip distortion -> lowpass -> highpass -> feedback delay -> limiter
//
// A [Chain] is created once per stream with a fixed sample rate. The host
// calls [Chain.Process] with one block and the current [Params]; the block
// is rewritten in place. Filter coefficients and delay settings are derived
// once per call and held for the whole block, so parameter changes take
// effect in steps at block boundaries.
//
// Process never allocates, locks or performs I/O and is safe to call from an
// audio callback. A Chain is not safe for concurrent use.
package signalchain
