package engine

import (
	"errors"
	"fmt"
)

// Generation errors. ErrInvalidParameters indicates a caller bug and is
// returned immediately; ErrGenerationExhausted is an expected quality
// failure - callers substitute FallbackLevel rather than surfacing it to
// the player-facing layer.
var (
	ErrInvalidParameters    = errors.New("engine: invalid generation parameters")
	ErrGenerationExhausted  = errors.New("engine: no acceptable level within attempt budget")
	errScrambleUnproductive = errors.New("engine: scramble produced a degenerate candidate")
)

// GenParams configures level generation.
type GenParams struct {
	ID         string
	Difficulty string // Tag recorded on the level (e.g. "normal")

	ColorCount int // Distinct colors, 2..PaletteSize
	Capacity   int // Per-container capacity (default 4)
	EmptySlots int // Total empty-slot budget across the puzzle, >= 1

	// ScrambleMoves is the target number of inverse operations. Zero means
	// derive from difficulty: colorCount * (4 + colorCount).
	ScrambleMoves int

	MaxAttempts int  // Generation attempt ceiling (default 10)
	FullCheck   bool // true: BFS-verify and optimize; false: heuristic-only
	Exhaustive  bool // Optimizer tries all removal counts, not first-failure

	Search SearchParams
	Seed   uint64 // RNG seed for reproducible generation (0 = fixed default)
}

// DefaultGenParams returns sensible defaults for level generation.
func DefaultGenParams() GenParams {
	return GenParams{
		Difficulty:  "normal",
		ColorCount:  5,
		Capacity:    4,
		EmptySlots:  8,
		MaxAttempts: 10,
		FullCheck:   true,
		Search:      DefaultSearchParams(),
	}
}

// GenerateLevel produces a scrambled level that is never already solved
// and, in full-check mode, is BFS-verified reachable back to a sorted state
// with the minimum empty-container overhead the optimizer can prove.
//
// Each failed attempt perturbs the seed and retries; after MaxAttempts the
// call fails with ErrGenerationExhausted.
func GenerateLevel(p GenParams) (Level, error) {
	if p.Capacity <= 0 {
		p.Capacity = 4
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 10
	}
	if p.ColorCount < 2 || p.ColorCount > PaletteSize {
		return Level{}, fmt.Errorf("%w: color count %d outside 2..%d",
			ErrInvalidParameters, p.ColorCount, PaletteSize)
	}
	if p.EmptySlots < 1 {
		return Level{}, fmt.Errorf("%w: empty slot budget %d < 1",
			ErrInvalidParameters, p.EmptySlots)
	}
	if p.ScrambleMoves <= 0 {
		p.ScrambleMoves = p.ColorCount * (4 + p.ColorCount)
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		// Perturb the seed per attempt so retries explore new scrambles.
		rng := NewRNG(p.Seed + uint64(attempt)*12345)

		level, err := generateOnce(p, rng)
		if err != nil {
			lastErr = err
			continue
		}
		return level, nil
	}
	return Level{}, fmt.Errorf("%w after %d attempts: %v",
		ErrGenerationExhausted, p.MaxAttempts, lastErr)
}

// generateOnce runs one scramble/optimize/accept pipeline pass.
func generateOnce(p GenParams, rng *SimpleRNG) (Level, error) {
	colors := append([]Color(nil), Palette()[:p.ColorCount]...)

	containers := buildSolvedSeed(colors, p.Capacity, p.EmptySlots)
	sc := &scrambler{rng: rng, visited: make(map[string]struct{})}
	containers = sc.scramble(containers, p.ScrambleMoves)
	ensureEmptyContainer(containers)
	shuffleAndRelabel(containers, rng)

	level := Level{
		ID:         p.ID,
		Difficulty: p.Difficulty,
		ColorCount: p.ColorCount,
		Capacity:   p.Capacity,
		Containers: containers,
	}

	if !p.FullCheck {
		// Heuristic-only mode: reachability is guaranteed by inverse-op
		// construction; only the structural gates run.
		if err := AcceptLevel(level, nil); err != nil {
			return Level{}, fmt.Errorf("%w: %v", errScrambleUnproductive, err)
		}
		return level, nil
	}

	optimized, result := Optimize(level, OptimizeParams{
		MinEmpty:   1,
		Exhaustive: p.Exhaustive,
		Search:     p.Search,
	})
	if err := AcceptLevel(optimized, &result); err != nil {
		return Level{}, fmt.Errorf("%w: %v", errScrambleUnproductive, err)
	}
	return optimized, nil
}
