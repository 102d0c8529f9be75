// Package delay provides the circular feedback delay line shared by the
// time-domain effects.
//
// A Line covers exactly one processing buffer. Writing position pos stores the
// feedback state for that sample; the tap for pos is read offset samples ahead,
// modulo the line length, so entries written earlier in the same pass come back
// around once the tap wraps past the end of the buffer.
package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// ErrInvalidOffset is returned by Offset for negative, non-finite or overflowing delays.
var ErrInvalidOffset = errors.New("delay: invalid tap offset")

// maxDelaySamples bounds delays so that the floor fits in an int on every platform.
const maxDelaySamples = float64(math.MaxInt32)

// offsetSnap is the relative tolerance under which a delay just below a whole
// sample count is treated as that count.
const offsetSnap = 1e-9

// Line is a circular delay line of fixed length.
type Line struct {
	buffer []float64
}

// New returns a zero-filled delay line of the given size.
func New(size int) (*Line, error) {
	d := &Line{}
	if err := d.Prepare(size); err != nil {
		return nil, err
	}
	return d, nil
}

// Prepare sizes the line to size samples and clears it, reusing storage when possible.
func (d *Line) Prepare(size int) error {
	if size <= 0 {
		return fmt.Errorf("delay size must be > 0: %d", size)
	}
	d.buffer = core.EnsureLen(d.buffer, size)
	core.Zero(d.buffer)
	return nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Read returns the stored state at pos.
func (d *Line) Read(pos int) float64 {
	return d.buffer[pos]
}

// Step processes position pos: it reads the tap at (pos+offset) mod Len, then
// stores in + feedback*tap at pos and returns the tap. offset must already be
// reduced to [0, Len). The read happens before the write, so offset 0 yields the
// value stored at pos by an earlier pass of the same buffer (zero after Prepare).
func (d *Line) Step(pos, offset int, in, feedback float64) float64 {
	idx := pos + offset
	if idx >= len(d.buffer) {
		idx -= len(d.buffer)
	}
	delayed := d.buffer[idx]
	d.buffer[pos] = in + feedback*delayed
	return delayed
}

// Reset clears line state.
func (d *Line) Reset() {
	core.Zero(d.buffer)
}

// Release drops the line storage.
func (d *Line) Release() {
	d.buffer = nil
}

// Offset converts a delay expressed in (fractional) samples to a tap offset for
// a line of the given size: floor(samples) mod size. Products such as
// (0.6+0.1)*44100 that land a rounding error below a whole number floor to that
// number rather than one sample less.
func Offset(samples float64, size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("delay size must be > 0: %d", size)
	}
	if !core.IsFinite(samples) || samples < 0 || samples > maxDelaySamples {
		return 0, fmt.Errorf("%w: %v samples", ErrInvalidOffset, samples)
	}
	whole := math.Floor(samples + offsetSnap*math.Max(1, samples))
	return int(whole) % size, nil
}
