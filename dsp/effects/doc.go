// Package effects provides the real-time effect stages of the signal chain.
//
//   - Gain: block gain via algo-vecmath.
//   - SoftClip: drive-normalized tanh saturation, bypassed below a threshold.
//   - FeedbackDelay: circular-buffer echo with attenuated feedback and a
//     half-wet mix ceiling.
//   - HardLimiter: symmetric hard clamp used as an output safety ceiling.
//
// Every stage is configured once per block and then processed per sample
// with zero-allocation hot paths.
package effects
