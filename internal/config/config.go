// Package config provides YAML-based configuration loading and difficulty
// presets for the liquid sort puzzle.
package config

// LiquidConfig contains all tunable parameters for level generation and
// the solvability search.
type LiquidConfig struct {
	Generation GenerationConfig `yaml:"generation"`
	Search     SearchConfig     `yaml:"search"`
}

// GenerationConfig defines the shape of generated levels.
// FullCheck is a pointer so a file that omits the key keeps solver
// verification on rather than silently disabling it.
type GenerationConfig struct {
	Colors        int   `yaml:"colors"`         // Distinct liquid colors per level
	Capacity      int   `yaml:"capacity"`       // Units of liquid per container
	EmptySlots    int   `yaml:"empty_slots"`    // Free capacity budget before optimization
	ScrambleMoves int   `yaml:"scramble_moves"` // Inverse operations applied; 0 picks a default
	MaxAttempts   int   `yaml:"max_attempts"`   // Generation retries before fallback
	FullCheck     *bool `yaml:"full_check"`     // Run the solver on every candidate; nil means yes
	Exhaustive    bool  `yaml:"exhaustive"`     // Try every empty-container reduction
}

// SearchConfig bounds the breadth-first solvability search.
type SearchConfig struct {
	MaxStates int `yaml:"max_states"` // Explored-state budget; 0 uses the engine default
	MaxDepth  int `yaml:"max_depth"`  // Move-depth cutoff; 0 uses the engine default
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
)

// Presets returns all difficulty presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert}
}

// ValidPreset returns true if the given name is a known difficulty preset.
func ValidPreset(name string) bool {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}
