package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/effects"
)

// ErrInvalidDescription is returned for malformed chain descriptions.
var ErrInvalidDescription = errors.New("effectchain: invalid chain description")

// descriptionEntry is a JSON-serializable effect entry.
type descriptionEntry struct {
	Type     string `json:"type"`
	Bypassed bool   `json:"bypassed"`
	Params   any    `json:"params"`
}

// descriptionState is the root JSON structure of a chain description.
type descriptionState struct {
	Mode    string             `json:"mode"`
	Gain    *float64           `json:"gain"`
	Bypass  bool               `json:"bypass"`
	Effects []descriptionEntry `json:"effects"`
}

// Description is a parsed chain description.
type Description struct {
	Mode    Mode
	Gain    float64
	Bypass  bool
	Effects []Params
}

// ParseDescription parses a JSON chain description such as
//
//	{"mode":"serial","gain":0.5,"effects":[{"type":"delay","params":{"delayTime":250}}]}
//
// An empty string yields an empty independent chain with unity gain.
func ParseDescription(raw string) (Description, error) {
	desc := Description{Gain: 1}
	if raw == "" {
		return desc, nil
	}

	var state descriptionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return Description{}, fmt.Errorf("%w: %w", ErrInvalidDescription, err)
	}

	switch state.Mode {
	case "", ModeIndependent.String():
		desc.Mode = ModeIndependent
	case ModeSerial.String():
		desc.Mode = ModeSerial
	default:
		return Description{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidDescription, state.Mode)
	}

	if state.Gain != nil {
		desc.Gain = *state.Gain
	}
	desc.Bypass = state.Bypass

	for i, e := range state.Effects {
		if e.Type == "" {
			return Description{}, fmt.Errorf("%w: effect %d has no type", ErrInvalidDescription, i)
		}

		num, str := parseParams(e.Params)
		desc.Effects = append(desc.Effects, Params{
			Type:     e.Type,
			Bypassed: e.Bypassed,
			Num:      num,
			Str:      str,
		})
	}

	return desc, nil
}

// Build creates the effects of d with reg, skipping bypassed entries, and
// returns them with the chain options carrying mode, gain and bypass.
// On error, effects built so far are released.
func (d Description) Build(reg *Registry) ([]effects.Effect, []Option, error) {
	settings := DefaultSettings()
	if err := settings.SetGain(d.Gain); err != nil {
		return nil, nil, err
	}
	settings.SetBypass(d.Bypass)

	fx := make([]effects.Effect, 0, len(d.Effects))
	for _, p := range d.Effects {
		if p.Bypassed {
			continue
		}

		e, err := reg.Build(p)
		if err != nil {
			releaseAll(fx)
			return nil, nil, err
		}
		fx = append(fx, e)
	}

	return fx, []Option{WithMode(d.Mode), WithSettings(settings)}, nil
}

func releaseAll(fx []effects.Effect) {
	for _, e := range fx {
		if r, ok := e.(effects.Releaser); ok {
			r.Release()
		}
	}
}
