package engine

// OptimizeParams configures the structural optimizer.
type OptimizeParams struct {
	// MinEmpty is the number of empty containers the optimizer must leave
	// in place. At least one empty container is a hard playability
	// constraint.
	MinEmpty int
	// Exhaustive disables the early exit on the first failed removal count
	// and tries every count up to the maximum. The default early exit
	// assumes removing k+1 empty containers cannot succeed where removing
	// k failed - a heuristic short-circuit, not a guarantee.
	Exhaustive bool
	// Search bounds the solvability re-checks.
	Search SearchParams
}

// DefaultOptimizeParams returns the optimizer defaults.
func DefaultOptimizeParams() OptimizeParams {
	return OptimizeParams{
		MinEmpty: 1,
		Search:   DefaultSearchParams(),
	}
}

// Optimize shrinks a solvable candidate level as far as solvability allows:
// it tries removing 1, 2, ... empty containers, re-running the search on
// each shrunk configuration, and keeps the largest removal count that still
// verifies solvable. A pure normalization pass merging adjacent same-color
// segments is always applied first.
//
// The returned SearchResult is the verification of the level actually
// returned, so callers get the solver baseline for free.
func Optimize(level Level, p OptimizeParams) (Level, SearchResult) {
	if p.MinEmpty < 1 {
		p.MinEmpty = 1
	}

	best := level.Clone()
	for i := range best.Containers {
		best.Containers[i].MergeAdjacent()
	}

	bestResult := Solve(best.NewState(), p.Search)
	if !bestResult.Solvable() {
		return best, bestResult
	}

	empties := 0
	for _, c := range best.Containers {
		if c.IsEmpty() {
			empties++
		}
	}

	for remove := 1; remove <= empties-p.MinEmpty; remove++ {
		shrunk := removeEmptyContainers(best, remove)
		result := Solve(shrunk.NewState(), p.Search)
		if result.Solvable() {
			best = shrunk
			bestResult = result
			continue
		}
		if !p.Exhaustive {
			break
		}
	}
	return best, bestResult
}

// removeEmptyContainers returns a copy of the level with the last n empty
// containers removed and IDs reassigned to stay dense.
func removeEmptyContainers(level Level, n int) Level {
	shrunk := level.Clone()
	drop := make(map[int]bool, n)
	for i := len(shrunk.Containers) - 1; i >= 0 && n > 0; i-- {
		if shrunk.Containers[i].IsEmpty() {
			drop[i] = true
			n--
		}
	}
	kept := make([]Container, 0, len(shrunk.Containers)-len(drop))
	for i, c := range shrunk.Containers {
		if drop[i] {
			continue
		}
		c.ID = len(kept)
		kept = append(kept, c)
	}
	shrunk.Containers = kept
	return shrunk
}
