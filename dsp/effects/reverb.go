package effects

import (
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/delay"
)

// reverbTapSpread separates the second tap from the first, in room-size units.
const reverbTapSpread = 0.1

// Reverb is a two-tap circular feedback reverb.
//
// For every sample i the taps read floor(roomSize*rate) and
// floor((roomSize+0.1)*rate) samples ahead (modulo the buffer length):
//
//	out[i]   = in[i] + dampening*(d1+d2)
//	line1[i] = in[i] + dampening*d1
//	line2[i] = in[i] + dampening*d2
type Reverb struct {
	mixer

	roomSize  float64
	dampening float64

	line1 delay.Line
	line2 delay.Line
}

// NewReverb creates a reverb. roomSize is in seconds and must be >= 0;
// dampening is the feedback coefficient of both taps.
func NewReverb(roomSize, dampening, mix float64, opts ...Option) (*Reverb, error) {
	if err := validateNonNegative("reverb room size", roomSize); err != nil {
		return nil, err
	}
	if err := validateFinite("reverb dampening", dampening); err != nil {
		return nil, err
	}
	m, err := newMixer(mix, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Reverb{mixer: m, roomSize: roomSize, dampening: dampening}, nil
}

// Name returns "reverb".
func (r *Reverb) Name() string { return "reverb" }

// RoomSize returns the room size in seconds.
func (r *Reverb) RoomSize() float64 { return r.roomSize }

// Dampening returns the tap feedback coefficient.
func (r *Reverb) Dampening() float64 { return r.dampening }

// Apply renders the reverb of in into out using in's sample rate.
func (r *Reverb) Apply(in, out *buffer.Buffer) error {
	if err := CheckBuffers(in, out); err != nil {
		return err
	}

	n := in.Len()
	rate := float64(in.SampleRate())

	off1, err := delay.Offset(r.roomSize*rate, n)
	if err != nil {
		return fmt.Errorf("reverb: first tap: %w", err)
	}
	off2, err := delay.Offset((r.roomSize+reverbTapSpread)*rate, n)
	if err != nil {
		return fmt.Errorf("reverb: second tap: %w", err)
	}

	if err := r.line1.Prepare(n); err != nil {
		return err
	}
	if err := r.line2.Prepare(n); err != nil {
		return err
	}

	src := in.Samples()
	dst := out.Samples()
	for i, x := range src {
		d1 := r.line1.Step(i, off1, x, r.dampening)
		d2 := r.line2.Step(i, off2, x, r.dampening)
		dst[i] = x + r.dampening*(d1+d2)
	}

	r.blend(src, dst)
	return nil
}

// Release drops the delay-line storage.
func (r *Reverb) Release() {
	r.line1.Release()
	r.line2.Release()
	r.mixer.release()
}
