package effectchain

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/effects"
	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

const (
	testRate = 44100
	testSize = 1024
)

// stubEffect scales its input by gain, or runs fn when set.
type stubEffect struct {
	name     string
	gain     float64
	fn       func(in, out *buffer.Buffer) error
	calls    int
	released int
}

func (s *stubEffect) Name() string         { return s.name }
func (s *stubEffect) Mix() float64         { return 1 }
func (s *stubEffect) SetMix(float64) error { return nil }
func (s *stubEffect) Release()             { s.released++ }
func (s *stubEffect) Apply(in, out *buffer.Buffer) error {
	s.calls++
	if s.fn != nil {
		return s.fn(in, out)
	}
	if err := effects.CheckBuffers(in, out); err != nil {
		return err
	}
	for i, v := range in.Samples() {
		out.Samples()[i] = s.gain * v
	}
	return nil
}

func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// newImpulseChain initializes a chain over fx and loads a unit impulse.
func newImpulseChain(t *testing.T, fx []effects.Effect, opts ...Option) *Chain {
	t.Helper()

	c := New(opts...)
	require.NoError(t, c.Init(testSize, testRate, testSize, testRate, fx))
	t.Cleanup(func() {
		if c.Initialized() {
			_ = c.Release()
		}
	})
	copy(c.Input().Samples(), testutil.Impulse(testSize, 0))

	return c
}

// canonicalEffects returns Reverb(0.8, 0.5, 0.7) followed by Delay(500, 0.4, 0.6).
func canonicalEffects(t *testing.T, opts ...effects.Option) []effects.Effect {
	t.Helper()

	rv, err := effects.NewReverb(0.8, 0.5, 0.7, opts...)
	require.NoError(t, err)
	dl, err := effects.NewDelay(500, 0.4, 0.6, opts...)
	require.NoError(t, err)

	return []effects.Effect{rv, dl}
}

func requireSparse(t *testing.T, want map[int]float64, got []float64) {
	t.Helper()
	testutil.RequireSparse(t, got, want, 1e-12)
}
