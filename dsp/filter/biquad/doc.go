// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing for a single second-order
// section defined by [Coefficients]: it keeps the two most recent inputs and
// the two most recent outputs as separate memory cells. Sections can be
// cascaded in series via [Chain].
//
// This package provides the processing runtime only. Coefficient design
// (RBJ low-pass/high-pass) lives in dsp/filter/design.
package biquad
