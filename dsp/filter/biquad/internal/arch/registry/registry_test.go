package registry

import (
	"slices"
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func newTestRegistry() *OpRegistry {
	reg := &OpRegistry{}
	reg.Register(OpEntry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(OpEntry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})
	reg.Register(OpEntry{Name: "sse2", SIMDLevel: cpu.SIMDSSE2, Priority: 10})

	return reg
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		want     string
	}{
		{"avx2", cpu.Features{HasSSE2: true, HasAVX2: true}, "avx2"},
		{"sse2 only", cpu.Features{HasSSE2: true}, "sse2"},
		{"none", cpu.Features{}, "generic"},
		{"forced generic", cpu.Features{HasSSE2: true, HasAVX2: true, ForceGeneric: true}, "generic"},
	}

	reg := newTestRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := reg.Lookup(tt.features)
			if entry == nil || entry.Name != tt.want {
				t.Fatalf("Lookup = %#v, want %s", entry, tt.want)
			}
		})
	}

	if got := reg.Names(); !slices.Equal(got, []string{"avx2", "sse2", "generic"}) {
		t.Fatalf("Names after lookup = %v", got)
	}
}

func TestLookupEmpty(t *testing.T) {
	if entry := (&OpRegistry{}).Lookup(cpu.Features{}); entry != nil {
		t.Fatalf("empty registry returned %#v", entry)
	}
}

func TestProcessReferenceImpulse(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	buf := []float64{1, 0, 0}
	st := ProcessReference(c, State{}, buf)

	want := []float64{0.25, 0.55, 0.35}
	for i := range want {
		if d := buf[i] - want[i]; d > 1e-12 || d < -1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
	if st != (State{X1: 0, X2: 0, Y1: buf[2], Y2: buf[1]}) {
		t.Fatalf("final state %#v", st)
	}
}
