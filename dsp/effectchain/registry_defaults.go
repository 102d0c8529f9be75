package effectchain

import "github.com/cwbudde/algo-fxchain/dsp/effects"

// Default effect parameters used when a description omits a value.
const (
	DefaultReverbRoomSize  = 0.8
	DefaultReverbDampening = 0.5
	DefaultReverbMix       = 0.7
	DefaultDelayTimeMs     = 500.0
	DefaultDelayFeedback   = 0.4
	DefaultDelayMix        = 0.6
)

// DefaultRegistry returns a Registry with the built-in "reverb" and "delay"
// effects. opts are passed to every effect constructor.
func DefaultRegistry(opts ...effects.Option) *Registry {
	r := NewRegistry()

	r.MustRegister("reverb", func(p Params) (effects.Effect, error) {
		return effects.NewReverb(
			p.GetNum("roomSize", DefaultReverbRoomSize),
			p.GetNum("dampening", DefaultReverbDampening),
			p.GetNum("mix", DefaultReverbMix),
			opts...,
		)
	})
	r.MustRegister("delay", func(p Params) (effects.Effect, error) {
		return effects.NewDelay(
			p.GetNum("delayTime", DefaultDelayTimeMs),
			p.GetNum("feedback", DefaultDelayFeedback),
			p.GetNum("mix", DefaultDelayMix),
			opts...,
		)
	})

	return r
}
