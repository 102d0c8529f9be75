// Package signal generates deterministic test and demo waveforms sized by a
// core.ProcessorConfig.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// ErrUnknownKind is returned by ParseKind for unsupported waveform names.
var ErrUnknownKind = errors.New("signal: unknown kind")

// Kind selects a waveform.
type Kind int

const (
	KindImpulse Kind = iota
	KindSine
	KindNoise
)

func (k Kind) String() string {
	switch k {
	case KindImpulse:
		return "impulse"
	case KindSine:
		return "sine"
	case KindNoise:
		return "noise"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "impulse", "sine" or "noise" to a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{KindImpulse, KindSine, KindNoise} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Impulse generates a unit impulse at pos.
func (g *Generator) Impulse(pos int) ([]float64, error) {
	if pos < 0 || pos >= g.cfg.Size {
		return nil, fmt.Errorf("impulse position must be in [0, %d): %d", g.cfg.Size, pos)
	}
	out := make([]float64, g.cfg.Size)
	out[pos] = 1
	return out, nil
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64) ([]float64, error) {
	if !core.IsFinite(freqHz) || freqHz < 0 {
		return nil, fmt.Errorf("sine frequency must be finite and >= 0: %f", freqHz)
	}
	out := make([]float64, g.cfg.Size)
	step := 2 * math.Pi * freqHz / float64(g.cfg.SampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64) ([]float64, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, g.cfg.Size)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Generate produces a waveform of the given kind. freqHz is only used by
// KindSine; impulses are placed at index 0 with unit height.
func (g *Generator) Generate(kind Kind, freqHz, amplitude float64) ([]float64, error) {
	switch kind {
	case KindImpulse:
		return g.Impulse(0)
	case KindSine:
		return g.Sine(freqHz, amplitude)
	case KindNoise:
		return g.WhiteNoise(amplitude)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

// Buffer wraps samples in a buffer at the generator's sample rate.
func (g *Generator) Buffer(samples []float64) (*buffer.Buffer, error) {
	return buffer.FromSlice(samples, g.cfg.SampleRate)
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	peak := floats.Norm(data, math.Inf(1))
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	f64.Scale(out, data, targetPeak/peak)
	return out, nil
}
