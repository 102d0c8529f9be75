package effectchain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-fxchain/dsp/effects"
)

// Factory builds one effect from its parameters.
type Factory func(p Params) (effects.Effect, error)

// Registry maps effect type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var (
	// ErrUnknownEffect is returned when no factory is registered for a type.
	ErrUnknownEffect = errors.New("effectchain: unknown effect type")

	errDuplicateEffect = errors.New("duplicate effect type")
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	if effectType == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.factories[effectType]
}

// Types returns the registered effect types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)

	return types
}

// Build creates an effect of type p.Type.
func (r *Registry) Build(p Params) (effects.Effect, error) {
	factory := r.Lookup(p.Type)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, p.Type)
	}

	fx, err := factory(p)
	if err != nil {
		return nil, fmt.Errorf("effectchain: build %s: %w", p.Type, err)
	}

	return fx, nil
}
