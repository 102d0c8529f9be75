// Package time computes time-domain statistics of an effect chain output.
package time

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	DC_dB          float64
	RMS            float64
	RMS_dB         float64
	Max            float64
	MaxPos         int
	Min            float64
	MinPos         int
	Peak           float64 // max(|max|, |min|)
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	ZeroCrossings  int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// emptyStats returns a zero-valued Stats with -Inf for all dB fields.
func emptyStats() Stats {
	return Stats{
		DC_dB:          math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all time-domain statistics of signal.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	maxPos := floats.MaxIdx(signal)
	minPos := floats.MinIdx(signal)
	norm := floats.Norm(signal, 2)
	rms := norm / math.Sqrt(float64(n))

	s := Stats{
		Length:        n,
		DC:            DC(signal),
		RMS:           rms,
		Max:           signal[maxPos],
		MaxPos:        maxPos,
		Min:           signal[minPos],
		MinPos:        minPos,
		Energy:        norm * norm,
		ZeroCrossings: ZeroCrossings(signal),
	}
	s.Peak = math.Max(math.Abs(s.Max), math.Abs(s.Min))
	s.DC_dB = ampTodB(s.DC)
	s.RMS_dB = ampTodB(s.RMS)
	s.Peak_dB = ampTodB(s.Peak)

	if rms == 0 {
		s.CrestFactor_dB = math.Inf(-1)
	} else {
		s.CrestFactor = s.Peak / rms
		s.CrestFactor_dB = ampTodB(s.CrestFactor)
	}

	return s
}

// CalculateBuffer computes the statistics of an initialized buffer.
// An uninitialized buffer yields the empty statistics.
func CalculateBuffer(b *buffer.Buffer) Stats {
	if b == nil {
		return emptyStats()
	}
	return Calculate(b.Samples())
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return floats.Norm(signal, 2) / math.Sqrt(float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return f64.Sum(signal) / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return floats.Norm(signal, math.Inf(1))
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	count := 0
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}
	return count
}
