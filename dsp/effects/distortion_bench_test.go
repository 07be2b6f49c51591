package effects

import "testing"

func BenchmarkSoftClip(b *testing.B) {
	s := NewSoftClip()
	s.SetAmount(0.4)

	buf := make([]float64, 512)
	for i := range buf {
		buf[i] = float64(i%64)/32 - 1
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))

	for b.Loop() {
		s.ProcessInPlace(buf)
	}
}
