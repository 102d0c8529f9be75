package effects

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/core"
)

var (
	// ErrNilBuffer is returned when Apply receives a nil buffer.
	ErrNilBuffer = errors.New("effects: nil buffer")
	// ErrSizeMismatch is returned when input and output lengths differ.
	ErrSizeMismatch = buffer.ErrSizeMismatch
	// ErrAliasedBuffers is returned when input and output are the same buffer.
	ErrAliasedBuffers = errors.New("effects: input and output must be distinct buffers")
	// ErrInvalidParameter is returned for out-of-range effect parameters.
	ErrInvalidParameter = errors.New("effects: invalid parameter")
)

// Effect transforms a whole input buffer into a whole output buffer.
type Effect interface {
	// Name returns the registry type name of the effect.
	Name() string
	// Mix returns the dry/wet coefficient in [0, 1].
	Mix() float64
	// SetMix sets the dry/wet coefficient in [0, 1].
	SetMix(mix float64) error
	// Apply reads in and overwrites every sample of out. in is never modified.
	Apply(in, out *buffer.Buffer) error
}

// Releaser is implemented by effects that hold storage worth dropping when
// their owner is torn down.
type Releaser interface {
	Release()
}

// Option configures an effect at construction time.
type Option func(*options)

type options struct {
	dryWet bool
}

// WithDryWet makes the effect blend its result with the input:
// out = (1-mix)*in + mix*wet. Without it, mix is stored but not applied.
func WithDryWet() Option {
	return func(o *options) { o.dryWet = true }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// CheckBuffers validates the Apply preconditions shared by all effects.
func CheckBuffers(in, out *buffer.Buffer) error {
	if in == nil || out == nil {
		return ErrNilBuffer
	}
	if !in.Initialized() || !out.Initialized() {
		return buffer.ErrNotInitialized
	}
	if in == out {
		return ErrAliasedBuffers
	}
	if in.Len() != out.Len() {
		return fmt.Errorf("%w: input %d, output %d", ErrSizeMismatch, in.Len(), out.Len())
	}
	return nil
}

// mixer holds the mix coefficient and the optional dry/wet stage.
type mixer struct {
	mix    float64
	dryWet bool
	dry    []float64
}

func newMixer(mix float64, o options) (mixer, error) {
	if err := validateMix(mix); err != nil {
		return mixer{}, err
	}
	return mixer{mix: mix, dryWet: o.dryWet}, nil
}

// Mix returns the dry/wet coefficient.
func (m *mixer) Mix() float64 { return m.mix }

// SetMix sets the dry/wet coefficient in [0, 1].
func (m *mixer) SetMix(mix float64) error {
	if err := validateMix(mix); err != nil {
		return err
	}
	m.mix = mix
	return nil
}

// DryWet reports whether mix is applied to the output.
func (m *mixer) DryWet() bool { return m.dryWet }

// blend turns the wet signal in out into (1-mix)*in + mix*out.
func (m *mixer) blend(in, out []float64) {
	if !m.dryWet {
		return
	}
	m.dry = core.EnsureLen(m.dry, len(in))
	vecmath.ScaleBlock(m.dry, in, 1-m.mix)
	vecmath.ScaleBlock(out, out, m.mix)
	vecmath.AddBlockInPlace(out, m.dry)
}

func (m *mixer) release() {
	m.dry = nil
}

func validateMix(mix float64) error {
	if !core.IsFinite(mix) || mix < 0 || mix > 1 {
		return fmt.Errorf("%w: mix must be in [0, 1]: %f", ErrInvalidParameter, mix)
	}
	return nil
}

func validateFinite(name string, v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("%w: %s must be finite: %f", ErrInvalidParameter, name, v)
	}
	return nil
}

func validateNonNegative(name string, v float64) error {
	if err := validateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be >= 0: %f", ErrInvalidParameter, name, v)
	}
	return nil
}
