// Package testutil holds signal builders and assertions shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	return Sparse(length, map[int]float64{pos: 1})
}

// Sparse returns a zero signal of the given length with values placed at the
// given positions. Positions outside [0, length) are ignored.
func Sparse(length int, values map[int]float64) []float64 {
	out := make([]float64, length)
	for pos, v := range values {
		if pos >= 0 && pos < length {
			out[pos] = v
		}
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Buffer wraps a copy of samples in an initialized buffer.
func Buffer(t testing.TB, samples []float64, sampleRate int) *buffer.Buffer {
	t.Helper()
	b, err := buffer.New(len(samples), sampleRate)
	if err != nil {
		t.Fatalf("buffer.New(%d, %d): %v", len(samples), sampleRate, err)
	}
	copy(b.Samples(), samples)
	return b
}

// ZeroBuffer returns an initialized zero-filled buffer.
func ZeroBuffer(t testing.TB, length, sampleRate int) *buffer.Buffer {
	t.Helper()
	return Buffer(t, make([]float64, length), sampleRate)
}
