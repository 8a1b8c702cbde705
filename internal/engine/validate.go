package engine

import "fmt"

// ValidationError contains details about an acceptance failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Acceptance rejection codes.
const (
	CodeAlreadySolved     = "ALREADY_SOLVED"
	CodeFreeWin           = "FREE_WIN"
	CodeStructureMismatch = "STRUCTURE_MISMATCH"
	CodeNoEmptyContainer  = "NO_EMPTY_CONTAINER"
	CodeNotSolvable       = "NOT_SOLVABLE"
)

// AcceptLevel is the final gate before a generated level is handed out.
// It rejects degenerate candidates: already solved, containing a "free win"
// container (full and single-colored, trivializing part of the puzzle),
// structurally inconsistent with the level's declared counts, lacking an
// empty container, or not verified solvable.
//
// result carries the solvability verdict already computed by the optimizer
// pass; a nil result skips the solvability check (heuristic-only mode,
// where reachability is guaranteed by inverse-op construction instead).
func AcceptLevel(level Level, result *SearchResult) error {
	state := level.NewState()

	if IsSolved(state) {
		return ValidationError{
			Code:    CodeAlreadySolved,
			Message: "initial state already satisfies the win predicate",
		}
	}

	for _, c := range level.Containers {
		if _, single := c.SingleColor(); single && c.IsFull() {
			return ValidationError{
				Code:    CodeFreeWin,
				Message: fmt.Sprintf("container %d is full and single-colored", c.ID),
			}
		}
	}

	if state.EmptyCount() == 0 {
		return ValidationError{
			Code:    CodeNoEmptyContainer,
			Message: "no empty container remains",
		}
	}

	if level.ContainerCount() != len(level.Containers) {
		return ValidationError{
			Code:    CodeStructureMismatch,
			Message: "declared container count does not match contents",
		}
	}
	if distinct := len(level.ColorsUsed()); distinct != level.ColorCount {
		return ValidationError{
			Code: CodeStructureMismatch,
			Message: fmt.Sprintf("declared %d colors but contents hold %d",
				level.ColorCount, distinct),
		}
	}
	for _, c := range level.Containers {
		if c.Volume() > c.Capacity {
			return ValidationError{
				Code:    CodeStructureMismatch,
				Message: fmt.Sprintf("container %d exceeds its capacity", c.ID),
			}
		}
	}

	if result != nil && !result.Solvable() {
		return ValidationError{
			Code: CodeNotSolvable,
			Message: fmt.Sprintf("search returned %s after %d states",
				result.Status, result.StatesExplored),
		}
	}
	return nil
}
