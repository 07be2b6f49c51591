package core

// EnsureLen returns buf resliced to n when its capacity allows, otherwise a
// fresh slice. Hosts call it once per block so steady-state processing does
// not allocate.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) { clear(buf) }

// Float32To64 converts src into dst and returns the number of converted
// samples (the shorter of the two lengths).
func Float32To64(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i, v := range src[:n] {
		dst[i] = float64(v)
	}
	return n
}

// Float64To32 converts src into dst and returns the number of converted samples.
func Float64To32(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i, v := range src[:n] {
		dst[i] = float32(v)
	}
	return n
}
