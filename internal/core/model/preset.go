package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoPresets indicates a registry was built from an empty preset list.
var ErrNoPresets = errors.New("no presets defined")

// Phase is the half of the focus cycle the timer is counting down.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Valid reports whether phase is Work or Break.
func (phase Phase) Valid() bool {
	return phase == PhaseWork || phase == PhaseBreak
}

// Next returns the opposite phase.
func (phase Phase) Next() Phase {
	if phase == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// Preset is a named pair of work and break durations.
type Preset struct {
	ID           string
	Label        string
	WorkMinutes  int
	BreakMinutes int
}

// Seconds returns the full length of phase in whole seconds.
func (preset Preset) Seconds(phase Phase) int {
	if phase == PhaseBreak {
		return preset.BreakMinutes * 60
	}
	return preset.WorkMinutes * 60
}

// Duration returns the full length of phase.
func (preset Preset) Duration(phase Phase) time.Duration {
	return time.Duration(preset.Seconds(phase)) * time.Second
}

// DefaultPresets returns the built-in preset list. The first entry is the default.
func DefaultPresets() []Preset {
	return []Preset{
		{ID: "50_10", Label: "50 / 10", WorkMinutes: 50, BreakMinutes: 10},
		{ID: "25_5", Label: "25 / 5", WorkMinutes: 25, BreakMinutes: 5},
		{ID: "90_20", Label: "90 / 20", WorkMinutes: 90, BreakMinutes: 20},
	}
}

// Registry is an ordered, read-only set of presets.
type Registry struct {
	presets []Preset
	byID    map[string]int
}

// NewRegistry validates presets and builds a registry over them.
func NewRegistry(presets []Preset) (*Registry, error) {
	if len(presets) == 0 {
		return nil, ErrNoPresets
	}

	registry := &Registry{
		presets: append([]Preset(nil), presets...),
		byID:    make(map[string]int, len(presets)),
	}
	for index, preset := range registry.presets {
		if preset.ID == "" {
			return nil, fmt.Errorf("preset %d: empty id", index)
		}
		if preset.WorkMinutes <= 0 || preset.BreakMinutes <= 0 {
			return nil, fmt.Errorf("preset %q: durations must be positive", preset.ID)
		}
		if _, exists := registry.byID[preset.ID]; exists {
			return nil, fmt.Errorf("preset %q: duplicate id", preset.ID)
		}
		registry.byID[preset.ID] = index
	}
	return registry, nil
}

// MustDefaultRegistry returns a registry over DefaultPresets.
func MustDefaultRegistry() *Registry {
	registry, err := NewRegistry(DefaultPresets())
	if err != nil {
		panic(err)
	}
	return registry
}

// All returns the presets in registry order.
func (registry *Registry) All() []Preset {
	return append([]Preset(nil), registry.presets...)
}

// Default returns the first preset.
func (registry *Registry) Default() Preset {
	return registry.presets[0]
}

// Lookup finds a preset by id.
func (registry *Registry) Lookup(id string) (Preset, bool) {
	index, ok := registry.byID[id]
	if !ok {
		return Preset{}, false
	}
	return registry.presets[index], true
}

// Resolve returns the preset named by id, or the default preset for unknown ids.
func (registry *Registry) Resolve(id string) Preset {
	if preset, ok := registry.Lookup(id); ok {
		return preset
	}
	return registry.Default()
}
