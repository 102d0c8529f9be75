package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

func TestNewDelayValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		time     float64
		feedback float64
		mix      float64
	}{
		{name: "negative time", time: -1, feedback: 0.4, mix: 0.5},
		{name: "nan feedback", time: 10, feedback: nan(), mix: 0.5},
		{name: "mix above one", time: 10, feedback: 0.4, mix: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewDelay(tt.time, tt.feedback, tt.mix)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}

	d, err := NewDelay(500, 0.4, 0.6)
	require.NoError(t, err)
	assert.Equal(t, "delay", d.Name())
	assert.Equal(t, 500.0, d.Time())
	assert.Equal(t, 0.4, d.Feedback())
	assert.Equal(t, 0.6, d.Mix())
}

// With 500 ms at 44.1 kHz over 1024 samples the tap reads 546 samples ahead,
// so an impulse at 0 comes back every 1024-546 = 478 samples, scaled by the
// feedback each time, until the next echo would fall past the buffer end.
func TestDelayImpulseResponse(t *testing.T) {
	t.Parallel()

	const feedback = 0.4

	d, err := NewDelay(500, feedback, 0.6)
	require.NoError(t, err)

	in := testutil.Buffer(t, testutil.Impulse(testSize, 0), testRate)
	out := testutil.ZeroBuffer(t, testSize, testRate)
	require.NoError(t, d.Apply(in, out))

	shift := (500 * testRate / 1000) % testSize
	require.Equal(t, 546, shift)

	want := make(map[int]float64)
	gain := 1.0
	for pos := 0; pos < testSize; pos += testSize - shift {
		want[pos] = gain
		gain *= feedback
	}
	require.Len(t, want, 3)
	for _, pos := range []int{0, 478, 956} {
		require.Contains(t, want, pos)
	}

	testutil.RequireSliceNearlyEqual(t, out.Samples(), testutil.Sparse(testSize, want), 1e-15)
}

func TestDelayZeroOffsetIsIdentity(t *testing.T) {
	t.Parallel()

	src := testutil.DeterministicNoise(9, 1, 1000)

	// 0 ms, and 1000 ms at 1 kHz over 1000 samples, both reduce to offset 0.
	for _, ms := range []float64{0, 1000} {
		d, err := NewDelay(ms, 0.7, 0.5)
		require.NoError(t, err)

		in := testutil.Buffer(t, src, 1000)
		out := testutil.ZeroBuffer(t, 1000, 1000)
		require.NoError(t, d.Apply(in, out))
		testutil.RequireSliceNearlyEqual(t, out.Samples(), src, 0)
	}
}

// An offset of one sample reads the next, not yet written, entry except at the
// last index, which wraps to entry 0.
func TestDelayOneSampleOffset(t *testing.T) {
	t.Parallel()

	d, err := NewDelay(1, 0.5, 0)
	require.NoError(t, err)

	in := testutil.Buffer(t, []float64{1, 2, 3, 4}, 1000)
	out := testutil.ZeroBuffer(t, 4, 1000)
	require.NoError(t, d.Apply(in, out))

	assert.Equal(t, []float64{1, 2, 3, 4 + 0.5*1}, out.Samples())
}

func TestDelayHugeOffsetRejected(t *testing.T) {
	t.Parallel()

	d, err := NewDelay(1e12, 0.5, 0)
	require.NoError(t, err)

	in := testutil.ZeroBuffer(t, 4, 96000)
	out := testutil.ZeroBuffer(t, 4, 96000)
	require.Error(t, d.Apply(in, out))
}
