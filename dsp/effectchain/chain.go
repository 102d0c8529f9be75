// Package effectchain runs an ordered list of effects over an owned pair of
// input and output buffers: the plugin layer of the effects chain.
package effectchain

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/effects"
)

var (
	// ErrAlreadyInitialized is returned by Init on a chain that owns buffers.
	ErrAlreadyInitialized = errors.New("effectchain: already initialized")
	// ErrNotInitialized is returned by Apply and Release on a chain without buffers.
	ErrNotInitialized = errors.New("effectchain: not initialized")
	// ErrSizeMismatch is returned by Init when input and output sizes differ.
	ErrSizeMismatch = buffer.ErrSizeMismatch
	// ErrNilEffect is returned by Init when the effect list contains nil.
	ErrNilEffect = errors.New("effectchain: nil effect")
	// ErrEffectFailed wraps any error or panic raised by an effect during Apply.
	ErrEffectFailed = errors.New("effectchain: effect failed")
)

// Mode selects how effects are combined.
type Mode int

const (
	// ModeIndependent feeds every effect the original input and lets each one
	// overwrite the shared output, so the last effect in the list wins.
	ModeIndependent Mode = iota
	// ModeSerial feeds the output of effect N into effect N+1.
	ModeSerial
)

// String returns the description name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeIndependent:
		return "independent"
	case ModeSerial:
		return "serial"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Option configures a Chain.
type Option func(*Chain)

// WithMode sets how effects are combined. The default is ModeIndependent.
func WithMode(m Mode) Option {
	return func(c *Chain) { c.mode = m }
}

// WithLogger sets the logger used for apply and failure reports.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPool makes the chain acquire its buffers from p.
func WithPool(p *buffer.Pool) Option {
	return func(c *Chain) {
		if p != nil {
			c.pool = p
		}
	}
}

// WithSource records where the input buffer logically comes from.
func WithSource(f *File) Option {
	return func(c *Chain) { c.source = f }
}

// WithDestination records where the output buffer logically goes.
func WithDestination(f *File) Option {
	return func(c *Chain) { c.destination = f }
}

// WithSettings replaces the default settings (gain 1, no bypass).
func WithSettings(s Settings) Option {
	return func(c *Chain) { c.settings = s }
}

// Chain owns an input buffer, an output buffer and an ordered list of effects.
// A Chain is not safe for concurrent use.
type Chain struct {
	mode     Mode
	log      logrus.FieldLogger
	pool     *buffer.Pool
	settings Settings

	source      *File
	destination *File

	input   *buffer.Buffer
	output  *buffer.Buffer
	scratch [2]*buffer.Buffer
	effects []effects.Effect
}

// New creates an uninitialized Chain.
func New(opts ...Option) *Chain {
	c := &Chain{
		log:      logrus.StandardLogger(),
		pool:     buffer.NewPool(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Init allocates the input and output buffers and takes ownership of fx.
// Input and output must have the same size. On failure nothing stays acquired
// and ownership of fx remains with the caller.
func (c *Chain) Init(inputSize, inputRate, outputSize, outputRate int, fx []effects.Effect) (err error) {
	if c.input != nil {
		return ErrAlreadyInitialized
	}
	if inputSize != outputSize {
		return fmt.Errorf("%w: input %d, output %d", ErrSizeMismatch, inputSize, outputSize)
	}
	for i, e := range fx {
		if e == nil {
			return fmt.Errorf("%w at index %d", ErrNilEffect, i)
		}
	}

	in, err := c.pool.Get(inputSize, inputRate)
	if err != nil {
		return fmt.Errorf("effectchain: input buffer: %w", err)
	}
	defer func() {
		if err != nil {
			_ = c.pool.Put(in)
		}
	}()

	out, err := c.pool.Get(outputSize, outputRate)
	if err != nil {
		return fmt.Errorf("effectchain: output buffer: %w", err)
	}

	c.input = in
	c.output = out
	c.effects = append([]effects.Effect(nil), fx...)

	c.log.WithFields(logrus.Fields{
		"size":    inputSize,
		"rate":    inputRate,
		"effects": len(c.effects),
		"mode":    c.mode.String(),
	}).Debug("effect chain initialized")

	return nil
}

// Release returns the buffers to the pool and releases every owned effect.
// Calling Release on an uninitialized or already released chain returns
// ErrNotInitialized.
func (c *Chain) Release() error {
	if c.input == nil {
		return ErrNotInitialized
	}

	var errs []error
	for _, b := range []*buffer.Buffer{c.input, c.output, c.scratch[0], c.scratch[1]} {
		if b == nil {
			continue
		}
		if err := c.pool.Put(b); err != nil {
			errs = append(errs, err)
		}
	}
	for _, e := range c.effects {
		if r, ok := e.(effects.Releaser); ok {
			r.Release()
		}
	}

	c.input = nil
	c.output = nil
	c.scratch = [2]*buffer.Buffer{}
	c.effects = nil

	return errors.Join(errs...)
}

// Initialized reports whether the chain currently owns its buffers.
func (c *Chain) Initialized() bool {
	return c.input != nil
}

// Input returns the input buffer, or nil before Init.
func (c *Chain) Input() *buffer.Buffer {
	return c.input
}

// Output returns the output buffer, or nil before Init.
func (c *Chain) Output() *buffer.Buffer {
	return c.output
}

// Effects returns a copy of the effect list in application order.
func (c *Chain) Effects() []effects.Effect {
	return append([]effects.Effect(nil), c.effects...)
}

// Settings returns the mutable chain settings.
func (c *Chain) Settings() *Settings {
	return &c.settings
}

// Mode returns how effects are combined.
func (c *Chain) Mode() Mode {
	return c.mode
}

// Source returns the input file descriptor, if any.
func (c *Chain) Source() *File {
	return c.source
}

// Destination returns the output file descriptor, if any.
func (c *Chain) Destination() *File {
	return c.destination
}
