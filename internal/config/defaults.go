package config

import (
	_ "embed"
)

//go:embed defaults/liquidsort.yaml
var defaultLiquidYAML []byte

// DefaultLiquidConfig returns the hardcoded default configuration.
// Used as the final fallback if the embedded YAML fails to parse.
func DefaultLiquidConfig() LiquidConfig {
	fullCheck := true
	return LiquidConfig{
		Generation: GenerationConfig{
			Colors:      6,
			Capacity:    4,
			EmptySlots:  8,
			MaxAttempts: 10,
			FullCheck:   &fullCheck,
		},
		Search: SearchConfig{
			MaxStates: 200000,
			MaxDepth:  96,
		},
	}
}

// GetDefaultYAML returns the embedded default configuration YAML.
func GetDefaultYAML() []byte {
	return defaultLiquidYAML
}
