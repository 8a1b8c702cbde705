package engine

import (
	"fmt"
	"time"
)

// PourReason identifies why a pour was rejected.
type PourReason int

const (
	// PourSameContainer: source and target are the same container.
	PourSameContainer PourReason = iota + 1
	// PourInvalidContainer: an unknown container ID was given.
	PourInvalidContainer
	// PourEmptySource: the source container holds no liquid.
	PourEmptySource
	// PourContainerFull: the target container has no free space at all.
	PourContainerFull
	// PourColorMismatch: the target is non-empty and its top color differs.
	PourColorMismatch
	// PourInsufficientCapacity: colors are compatible but the target cannot
	// hold the source's full top run.
	PourInsufficientCapacity
)

// String returns a stable identifier for the reason.
func (r PourReason) String() string {
	switch r {
	case PourSameContainer:
		return "same_container"
	case PourInvalidContainer:
		return "invalid_container"
	case PourEmptySource:
		return "empty_source"
	case PourContainerFull:
		return "container_full"
	case PourColorMismatch:
		return "color_mismatch"
	case PourInsufficientCapacity:
		return "insufficient_capacity"
	default:
		return "unknown"
	}
}

// PourError is the discriminated rejection result of ValidatePour. Callers
// switch on Reason to render precise feedback; it is a normal outcome, not
// a caller bug.
type PourError struct {
	Reason PourReason
	From   int
	To     int
}

func (e *PourError) Error() string {
	return fmt.Sprintf("pour %d -> %d rejected: %s", e.From, e.To, e.Reason)
}

// ValidatePour checks whether pouring the source's top run into the target
// is legal and, on success, returns the Move that would occur without
// mutating the state. Checks are ordered: same container, unknown ID,
// empty source, color compatibility, then capacity. A full target with a
// mismatched top color reports PourColorMismatch; PourContainerFull is
// reserved for targets whose top color would otherwise accept the run.
func ValidatePour(s *State, fromID, toID int) (Move, *PourError) {
	fail := func(r PourReason) (Move, *PourError) {
		return Move{}, &PourError{Reason: r, From: fromID, To: toID}
	}

	if fromID == toID {
		return fail(PourSameContainer)
	}
	from := s.Container(fromID)
	to := s.Container(toID)
	if from == nil || to == nil {
		return fail(PourInvalidContainer)
	}

	run, ok := from.TopRun()
	if !ok {
		return fail(PourEmptySource)
	}
	if top, hasTop := to.TopSegment(); hasTop && top.Color != run.Color {
		return fail(PourColorMismatch)
	}
	if to.IsFull() {
		return fail(PourContainerFull)
	}
	if to.RemainingCapacity() < run.Volume {
		return fail(PourInsufficientCapacity)
	}

	return Move{From: fromID, To: toID, Segment: run}, nil
}

// ExecutePour re-validates and produces a new State with the source's top
// run moved to the target. Calling it with an illegal pour is a caller
// contract violation and panics; validate first.
func ExecutePour(s *State, fromID, toID int) *State {
	move, perr := ValidatePour(s, fromID, toID)
	if perr != nil {
		panic(fmt.Sprintf("engine: ExecutePour without successful validation: %v", perr))
	}
	move.At = time.Now()

	next := s.Clone()
	from := next.Container(fromID)
	to := next.Container(toID)
	run, _ := from.PopTopRun()
	if err := to.Push(run); err != nil {
		panic(fmt.Sprintf("engine: validated pour failed to apply: %v", err))
	}
	next.History = append(next.History, move)
	next.Cursor = len(next.History)
	return next
}

// IsSolved reports whether every color's total volume is packed into the
// minimum number of containers, with all but at most one of them completely
// full. This is stricter than "every container is single-colored": two
// half-full containers of the same color that could be consolidated into
// one do not count as solved.
func IsSolved(s *State) bool {
	capacity := s.Capacity()
	if capacity <= 0 {
		return false
	}

	totals := make(map[Color]int)
	holders := make(map[Color]int)
	notFull := make(map[Color]int)
	for _, c := range s.Containers {
		if c.IsEmpty() {
			continue
		}
		color, single := c.SingleColor()
		if !single {
			return false
		}
		totals[color] += c.Volume()
		holders[color]++
		if !c.IsFull() {
			notFull[color]++
		}
	}

	for color, total := range totals {
		minContainers := (total + capacity - 1) / capacity
		if holders[color] != minContainers {
			return false
		}
		if notFull[color] > 1 {
			return false
		}
	}
	return true
}

// HasLegalMove reports whether any ordered pair of containers admits a
// legal pour. Enumerates all pairs; called per player turn, not per
// search node.
func HasLegalMove(s *State) bool {
	for i := range s.Containers {
		for j := range s.Containers {
			if i == j {
				continue
			}
			if _, perr := ValidatePour(s, s.Containers[i].ID, s.Containers[j].ID); perr == nil {
				return true
			}
		}
	}
	return false
}

// IsLost reports whether the state is stuck: not solved and no legal pour
// remains.
func IsLost(s *State) bool {
	return !IsSolved(s) && !HasLegalMove(s)
}
