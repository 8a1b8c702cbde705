package config

import (
	"github.com/vovakirdan/tui-liquidsort/internal/engine"
)

// ApplyPreset adjusts the generation parameters for a difficulty preset.
// Unknown presets leave the config unchanged.
func ApplyPreset(cfg *LiquidConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Generation.Colors = 4
		cfg.Generation.EmptySlots = 8
	case DifficultyNormal:
		cfg.Generation.Colors = 6
		cfg.Generation.EmptySlots = 8
	case DifficultyHard:
		cfg.Generation.Colors = 8
		cfg.Generation.EmptySlots = 8
		cfg.Generation.Exhaustive = true
	case DifficultyExpert:
		cfg.Generation.Colors = 10
		cfg.Generation.EmptySlots = 4
		cfg.Generation.Exhaustive = true
	}
}

// GenParams converts the config into engine generation parameters.
// The level ID and seed are supplied by the caller.
func (c LiquidConfig) GenParams(id string, preset DifficultyPreset, seed uint64) engine.GenParams {
	p := engine.DefaultGenParams()
	p.ID = id
	p.Difficulty = string(preset)
	p.Seed = seed

	if c.Generation.Colors > 0 {
		p.ColorCount = c.Generation.Colors
	}
	if c.Generation.Capacity > 0 {
		p.Capacity = c.Generation.Capacity
	}
	if c.Generation.EmptySlots > 0 {
		p.EmptySlots = c.Generation.EmptySlots
	}
	if c.Generation.ScrambleMoves > 0 {
		p.ScrambleMoves = c.Generation.ScrambleMoves
	}
	if c.Generation.MaxAttempts > 0 {
		p.MaxAttempts = c.Generation.MaxAttempts
	}
	if c.Generation.FullCheck != nil {
		p.FullCheck = *c.Generation.FullCheck
	}
	p.Exhaustive = c.Generation.Exhaustive

	if c.Search.MaxStates > 0 {
		p.Search.MaxStates = c.Search.MaxStates
	}
	if c.Search.MaxDepth > 0 {
		p.Search.MaxDepth = c.Search.MaxDepth
	}
	return p
}
