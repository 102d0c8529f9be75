// Package frequency computes frequency-domain statistics of an effect chain
// output, most notably its dominant frequency.
package frequency

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptySignal is returned when there are no samples to analyze.
	ErrEmptySignal = errors.New("frequency: empty signal")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("frequency: sample rate must be > 0")
)

// Stats holds frequency-domain statistics computed from a magnitude spectrum.
//
//nolint:revive
type Stats struct {
	BinCount int
	DC       float64 // bin 0 magnitude
	DC_dB    float64
	Max      float64
	MaxBin   int
	Max_dB   float64
	Dominant float64 // frequency of the strongest non-DC bin (Hz)
	Centroid float64 // spectral centroid (Hz)
	Energy   float64 // sum of squared magnitudes
}

// toDB converts a linear magnitude to decibels.
// Returns -Inf for zero values.
func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

// binFreq returns the frequency in Hz of a given bin index.
// fftSize = 2 * (len(magnitude) - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// fftSize returns the smallest power of two >= n.
func fftSize(n int) int {
	if n <= 1 {
		return 2
	}
	return 1 << bits.Len(uint(n-1))
}

// Spectrum returns the one-sided magnitude spectrum of signal (bins 0 to
// Nyquist). The signal is zero-padded to the next power of two.
func Spectrum(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	n := fftSize(len(signal))
	in := make([]complex128, n)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("frequency: fft plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("frequency: fft: %w", err)
	}

	mag := make([]float64, n/2+1)
	for i := range mag {
		mag[i] = cmplx.Abs(out[i])
	}
	return mag, nil
}

// Calculate computes frequency-domain statistics from a magnitude spectrum
// (linear scale, NOT dB).
//
// The magnitude slice represents bins from 0 (DC) to Nyquist (one-sided
// spectrum, length = FFTSize/2 + 1). The frequency of bin i is:
//
//	f_i = i * sampleRate / (2 * (len(magnitude) - 1))
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n == 0 {
		return Stats{
			DC_dB:  math.Inf(-1),
			Max_dB: math.Inf(-1),
		}
	}

	s := Stats{
		BinCount: n,
		DC:       magnitude[0],
		MaxBin:   floats.MaxIdx(magnitude),
		Energy:   floats.Dot(magnitude, magnitude),
	}
	s.Max = magnitude[s.MaxBin]
	s.DC_dB = toDB(s.DC)
	s.Max_dB = toDB(s.Max)

	if n < 2 {
		return s
	}

	s.Centroid = Centroid(magnitude, sampleRate)
	if ac := magnitude[1:]; floats.Max(ac) > 0 {
		s.Dominant = binFreq(floats.MaxIdx(ac)+1, sampleRate, n)
	}

	return s
}

// Analyze transforms signal and computes its frequency-domain statistics.
func Analyze(signal []float64, sampleRate int) (Stats, error) {
	if sampleRate <= 0 {
		return Stats{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	mag, err := Spectrum(signal)
	if err != nil {
		return Stats{}, err
	}

	return Calculate(mag, float64(sampleRate)), nil
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// spectral component of signal, or 0 when the signal has no AC content.
// Resolution is sampleRate / FFT size.
func DominantFrequency(signal []float64, sampleRate int) (float64, error) {
	s, err := Analyze(signal, sampleRate)
	if err != nil {
		return 0, err
	}
	return s.Dominant, nil
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}
	sumMag := floats.Sum(magnitude)
	if sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += binFreq(i, sampleRate, n) * v
	}
	return weightedSum / sumMag
}
