package effects

import (
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/delay"
)

// Delay is a single-tap circular feedback delay.
//
// For every sample i the tap reads floor(delayTimeMs*rate/1000) samples ahead
// (modulo the buffer length):
//
//	out[i]  = in[i] + feedback*d
//	line[i] = in[i] + feedback*d
type Delay struct {
	mixer

	delayTimeMs float64
	feedback    float64

	line delay.Line
}

// NewDelay creates a delay. delayTimeMs must be >= 0.
func NewDelay(delayTimeMs, feedback, mix float64, opts ...Option) (*Delay, error) {
	if err := validateNonNegative("delay time", delayTimeMs); err != nil {
		return nil, err
	}
	if err := validateFinite("delay feedback", feedback); err != nil {
		return nil, err
	}
	m, err := newMixer(mix, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Delay{mixer: m, delayTimeMs: delayTimeMs, feedback: feedback}, nil
}

// Name returns "delay".
func (d *Delay) Name() string { return "delay" }

// Time returns the delay time in milliseconds.
func (d *Delay) Time() float64 { return d.delayTimeMs }

// Feedback returns the tap feedback coefficient.
func (d *Delay) Feedback() float64 { return d.feedback }

// Apply renders the delay of in into out using in's sample rate.
func (d *Delay) Apply(in, out *buffer.Buffer) error {
	if err := CheckBuffers(in, out); err != nil {
		return err
	}

	n := in.Len()
	off, err := delay.Offset(d.delayTimeMs*float64(in.SampleRate())/1000, n)
	if err != nil {
		return fmt.Errorf("delay: %w", err)
	}
	if err := d.line.Prepare(n); err != nil {
		return err
	}

	src := in.Samples()
	dst := out.Samples()
	for i, x := range src {
		dst[i] = x + d.feedback*d.line.Step(i, off, x, d.feedback)
	}

	d.blend(src, dst)
	return nil
}

// Release drops the delay-line storage.
func (d *Delay) Release() {
	d.line.Release()
	d.mixer.release()
}
