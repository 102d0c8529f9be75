package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/effects"
)

// Apply runs the effects over the input buffer and leaves the result in the
// output buffer. With bypass set the input is copied unchanged. Without effects
// the output is a copy of the input. The first failing effect aborts the call;
// its error is logged and returned wrapped in ErrEffectFailed.
func (c *Chain) Apply() error {
	if c.input == nil {
		return ErrNotInitialized
	}

	if c.settings.Bypass() || len(c.effects) == 0 {
		c.log.WithField("bypass", c.settings.Bypass()).Debug("effect chain passthrough")
		return c.output.CopyFrom(c.input)
	}

	var err error
	switch c.mode {
	case ModeSerial:
		err = c.applySerial()
	default:
		err = c.applyIndependent()
	}
	if err != nil {
		return err
	}

	if gain := c.settings.Gain(); gain != 1 {
		samples := c.output.Samples()
		vecmath.ScaleBlock(samples, samples, gain)
	}
	return nil
}

func (c *Chain) applyIndependent() error {
	for i, fx := range c.effects {
		if err := c.applyEffect(i, fx, c.input, c.output); err != nil {
			return err
		}
	}
	return nil
}

// applySerial ping-pongs between two scratch buffers so that no effect ever
// reads and writes the same buffer; the last effect writes the output.
func (c *Chain) applySerial() error {
	if err := c.ensureScratch(); err != nil {
		return err
	}

	src := c.input
	last := len(c.effects) - 1
	for i, fx := range c.effects {
		dst := c.output
		if i != last {
			dst = c.scratch[i%2]
		}
		if err := c.applyEffect(i, fx, src, dst); err != nil {
			return err
		}
		src = dst
	}
	return nil
}

func (c *Chain) ensureScratch() error {
	if len(c.effects) < 2 {
		return nil
	}
	for i := range c.scratch {
		if c.scratch[i] != nil {
			continue
		}
		b, err := c.pool.Get(c.input.Len(), c.input.SampleRate())
		if err != nil {
			return fmt.Errorf("effectchain: scratch buffer: %w", err)
		}
		c.scratch[i] = b
	}
	return nil
}

// applyEffect is the failure boundary around a single effect: errors and
// panics are logged and converted into ErrEffectFailed.
func (c *Chain) applyEffect(index int, fx effects.Effect, in, out *buffer.Buffer) (err error) {
	entry := c.log.WithFields(logrus.Fields{
		"effect": fx.Name(),
		"index":  index,
	})

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			entry.WithError(err).Error("effect processing failed")
			err = fmt.Errorf("%w: %s at index %d: %w", ErrEffectFailed, fx.Name(), index, err)
		}
	}()

	entry.Debug("applying effect")
	return fx.Apply(in, out)
}
