// Package registry holds the Direct Form I block kernels and picks one for
// the running CPU.
package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients with a0 normalized to 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// State is Direct Form I memory: the two previous inputs and outputs.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// ProcessBlockFn filters buf in place with one section starting from s and
// returns the memory after the last sample.
type ProcessBlockFn func(c Coefficients, s State, buf []float64) State

// OpEntry describes one kernel. Higher Priority wins among the entries whose
// SIMDLevel the CPU supports.
type OpEntry struct {
	Name         string
	SIMDLevel    cpu.SIMDLevel
	Priority     int
	ProcessBlock ProcessBlockFn
}

// OpRegistry is a set of kernels. Architecture packages fill it from init.
type OpRegistry struct {
	mu      sync.Mutex
	entries []OpEntry
	dirty   bool
}

// Global is the registry the biquad package dispatches through.
var Global = &OpRegistry{}

// Register adds a kernel.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.dirty = true
	r.mu.Unlock()
}

// Lookup returns the best kernel for features, or nil when none qualifies.
// Entries with equal priority keep registration order.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dirty {
		slices.SortStableFunc(r.entries, func(a, b OpEntry) int {
			return cmp.Compare(b.Priority, a.Priority)
		})
		r.dirty = false
	}

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			return &r.entries[i]
		}
	}

	return nil
}

// Names lists the registered kernels in registration or priority order.
func (r *OpRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}

	return names
}

// ProcessReference is the plain one-sample-per-iteration recurrence. Every
// kernel must reproduce it exactly.
func ProcessReference(c Coefficients, s State, buf []float64) State {
	for i, x := range buf {
		y := c.B0*x + c.B1*s.X1 + c.B2*s.X2 - c.A1*s.Y1 - c.A2*s.Y2
		s.X2, s.X1 = s.X1, x
		s.Y2, s.Y1 = s.Y1, y
		buf[i] = y
	}

	return s
}
