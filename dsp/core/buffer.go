// Package core holds the slice, numeric and configuration helpers shared by
// the buffer, delay line, effect and signal packages.
package core

// EnsureLen returns a slice of length n, reusing the capacity of buf when it
// is large enough. Reused samples keep their old values; call Zero before
// reading them as fresh state.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero silences buf.
func Zero(buf []float64) {
	clear(buf)
}
