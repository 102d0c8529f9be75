package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// ErrInvalidGain is returned for negative or non-finite gains.
var ErrInvalidGain = errors.New("effectchain: gain must be finite and >= 0")

// Settings holds the plugin-level gain and bypass switch.
type Settings struct {
	gain   float64
	bypass bool
}

// DefaultSettings returns unity gain with bypass off.
func DefaultSettings() Settings {
	return Settings{gain: 1}
}

// Gain returns the linear output gain.
func (s *Settings) Gain() float64 {
	return s.gain
}

// SetGain sets the linear output gain.
func (s *Settings) SetGain(gain float64) error {
	if !core.IsFinite(gain) || gain < 0 {
		return fmt.Errorf("%w: %f", ErrInvalidGain, gain)
	}
	s.gain = gain
	return nil
}

// SetGainDB sets the output gain in decibels.
func (s *Settings) SetGainDB(db float64) error {
	if !core.IsFinite(db) {
		return fmt.Errorf("%w: %f dB", ErrInvalidGain, db)
	}
	return s.SetGain(core.DBToLinear(db))
}

// GainDB returns the output gain in decibels (-Inf for zero gain).
func (s *Settings) GainDB() float64 {
	return core.LinearToDB(s.gain)
}

// Bypass reports whether the effects are skipped.
func (s *Settings) Bypass() bool {
	return s.bypass
}

// SetBypass enables or disables bypass.
func (s *Settings) SetBypass(bypass bool) {
	s.bypass = bypass
}
