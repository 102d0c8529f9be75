package effects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

const (
	testRate = 44100
	testSize = 1024
)

func newTestEffects(t *testing.T, opts ...Option) []Effect {
	t.Helper()

	r, err := NewReverb(0.8, 0.5, 0.7, opts...)
	require.NoError(t, err)

	d, err := NewDelay(500, 0.4, 0.6, opts...)
	require.NoError(t, err)

	return []Effect{r, d}
}

func TestCheckBuffers(t *testing.T) {
	t.Parallel()

	in := testutil.ZeroBuffer(t, 8, testRate)
	out := testutil.ZeroBuffer(t, 8, testRate)
	short := testutil.ZeroBuffer(t, 7, testRate)

	var empty buffer.Buffer

	tests := []struct {
		name    string
		in, out *buffer.Buffer
		want    error
	}{
		{name: "valid", in: in, out: out},
		{name: "nil input", in: nil, out: out, want: ErrNilBuffer},
		{name: "nil output", in: in, out: nil, want: ErrNilBuffer},
		{name: "uninitialized", in: &empty, out: out, want: buffer.ErrNotInitialized},
		{name: "aliased", in: in, out: in, want: ErrAliasedBuffers},
		{name: "size mismatch", in: in, out: short, want: ErrSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckBuffers(tt.in, tt.out)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApplyRejectsSizeMismatch(t *testing.T) {
	t.Parallel()

	for _, fx := range newTestEffects(t) {
		t.Run(fx.Name(), func(t *testing.T) {
			t.Parallel()

			in := testutil.Buffer(t, testutil.Impulse(16, 0), testRate)
			out := testutil.Buffer(t, testutil.DC(3, 15), testRate)

			require.ErrorIs(t, fx.Apply(in, out), ErrSizeMismatch)
			assert.Equal(t, testutil.DC(3, 15), out.Samples(), "output must be untouched on precondition failure")
		})
	}
}

func TestZeroInputGivesZeroOutput(t *testing.T) {
	t.Parallel()

	sizes := []int{1, 7, 64, testSize}
	rates := []int{1, 8000, testRate, 96000}

	for _, fx := range newTestEffects(t) {
		for _, n := range sizes {
			for _, rate := range rates {
				in := testutil.ZeroBuffer(t, n, rate)
				out := testutil.Buffer(t, testutil.DC(0.3, n), rate)

				require.NoError(t, fx.Apply(in, out))
				for i, v := range out.Samples() {
					require.Zerof(t, v, "%s n=%d rate=%d: out[%d]", fx.Name(), n, rate, i)
				}
			}
		}
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	src := testutil.DeterministicNoise(7, 1, testSize)

	for _, fx := range newTestEffects(t) {
		in := testutil.Buffer(t, src, testRate)
		out := testutil.ZeroBuffer(t, testSize, testRate)

		require.NoError(t, fx.Apply(in, out))
		assert.Equal(t, src, in.Samples(), fx.Name())
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	t.Parallel()

	src := testutil.DeterministicNoise(1234, 0.8, testSize)

	for _, fx := range newTestEffects(t) {
		in := testutil.Buffer(t, src, testRate)
		first := testutil.ZeroBuffer(t, testSize, testRate)
		second := testutil.Buffer(t, testutil.DC(5, testSize), testRate)

		require.NoError(t, fx.Apply(in, first))
		require.NoError(t, fx.Apply(in, second))

		for i := range first.Samples() {
			require.Equal(t,
				math.Float64bits(first.Samples()[i]),
				math.Float64bits(second.Samples()[i]),
				"%s: sample %d differs between calls", fx.Name(), i)
		}
		testutil.RequireFinite(t, first.Samples())
	}
}

func TestSetMix(t *testing.T) {
	t.Parallel()

	for _, fx := range newTestEffects(t) {
		require.NoError(t, fx.SetMix(0.25))
		assert.Equal(t, 0.25, fx.Mix())

		for _, bad := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1)} {
			require.ErrorIs(t, fx.SetMix(bad), ErrInvalidParameter)
		}
		assert.Equal(t, 0.25, fx.Mix(), "rejected mix must not be stored")
	}
}

// Mix is stored but not applied unless WithDryWet is used.
func TestMixIgnoredByDefault(t *testing.T) {
	t.Parallel()

	src := testutil.DeterministicNoise(3, 1, 256)

	a, err := NewDelay(2, 0.4, 0.0)
	require.NoError(t, err)
	b, err := NewDelay(2, 0.4, 1.0)
	require.NoError(t, err)

	in := testutil.Buffer(t, src, 8000)
	outA := testutil.ZeroBuffer(t, 256, 8000)
	outB := testutil.ZeroBuffer(t, 256, 8000)

	require.NoError(t, a.Apply(in, outA))
	require.NoError(t, b.Apply(in, outB))
	assert.Equal(t, outA.Samples(), outB.Samples())
	assert.False(t, a.DryWet())
}

func TestDryWetBlend(t *testing.T) {
	t.Parallel()

	src := testutil.DeterministicNoise(11, 1, 512)
	in := testutil.Buffer(t, src, 8000)

	literal, err := NewReverb(0.01, 0.5, 0.6)
	require.NoError(t, err)
	blended, err := NewReverb(0.01, 0.5, 0.6, WithDryWet())
	require.NoError(t, err)
	assert.True(t, blended.DryWet())

	wet := testutil.ZeroBuffer(t, 512, 8000)
	out := testutil.ZeroBuffer(t, 512, 8000)
	require.NoError(t, literal.Apply(in, wet))
	require.NoError(t, blended.Apply(in, out))

	want := make([]float64, len(src))
	for i := range want {
		want[i] = 0.4*src[i] + 0.6*wet.Samples()[i]
	}
	testutil.RequireSliceNearlyEqual(t, out.Samples(), want, 1e-12)
}

func TestDryWetFullyDry(t *testing.T) {
	t.Parallel()

	src := testutil.DeterministicNoise(5, 1, 128)

	d, err := NewDelay(3, 0.9, 0, WithDryWet())
	require.NoError(t, err)

	in := testutil.Buffer(t, src, 8000)
	out := testutil.ZeroBuffer(t, 128, 8000)
	require.NoError(t, d.Apply(in, out))
	testutil.RequireSliceNearlyEqual(t, out.Samples(), src, 1e-15)
}

func TestReleaseAllowsReuse(t *testing.T) {
	t.Parallel()

	for _, fx := range newTestEffects(t, WithDryWet()) {
		in := testutil.Buffer(t, testutil.Impulse(32, 0), testRate)
		out := testutil.ZeroBuffer(t, 32, testRate)

		require.NoError(t, fx.Apply(in, out))
		before := append([]float64(nil), out.Samples()...)

		rel, ok := fx.(Releaser)
		require.True(t, ok, "%s should implement Releaser", fx.Name())
		rel.Release()

		require.NoError(t, fx.Apply(in, out))
		assert.Equal(t, before, out.Samples())
	}
}
