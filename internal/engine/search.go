package engine

import "sort"

// SearchStatus is the tri-state outcome of a solvability search. The
// budget ceilings make the search bounded, not exhaustive: StatusUnproven
// means "no solution found within the configured budget", which must not
// be collapsed into a hard negative.
type SearchStatus int

const (
	// StatusSolved: a pour sequence reaching the win predicate was found.
	StatusSolved SearchStatus = iota
	// StatusNoSolution: the reachable state space was exhausted below the
	// budget ceilings without finding a solution. This is a proof.
	StatusNoSolution
	// StatusUnproven: a state or depth ceiling was hit first. The puzzle
	// may or may not be solvable.
	StatusUnproven
)

// String returns a human-readable status name.
func (s SearchStatus) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusNoSolution:
		return "no_solution"
	case StatusUnproven:
		return "unproven"
	default:
		return "unknown"
	}
}

// SearchParams bounds the breadth-first solvability search.
type SearchParams struct {
	MaxStates int // Ceiling on distinct states expanded
	MaxDepth  int // Ceiling on solution length explored
}

// DefaultSearchParams returns budgets that verify typical generated levels
// in well under a second while keeping pathological candidates bounded.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		MaxStates: 200000,
		MaxDepth:  96,
	}
}

// SearchResult reports the outcome of a solvability search.
type SearchResult struct {
	Status         SearchStatus
	Moves          []Move // Pour sequence to the solved state when Status is StatusSolved
	StatesExplored int
	Depth          int // Depth reached (solution length when solved)
}

// Solvable is a convenience accessor: true only for StatusSolved.
func (r SearchResult) Solvable() bool {
	return r.Status == StatusSolved
}

// Move priority scores. Ordering does not affect completeness (BFS still
// expands every undiscovered neighbor) but decides which equally-short
// solution surfaces first and how quickly one is found before the state
// ceiling hits.
const (
	scoreEmptyTarget    = 100 // Pour into an empty container
	scoreClearsSource   = 200 // ...and the source is fully emptied
	scoreColorMatch     = 150 // Pour onto a matching color
	scoreFillsTarget    = 100 // Pour completes the target
	scoreEmptiesMatched = 100 // Matched pour fully empties the source
	penaltyBreakSorted  = 300 // Pour out of an already-sorted full container
)

type searchNode struct {
	state *State
	depth int
}

// Solve runs a breadth-first search from the given state, looking for a
// pour sequence that satisfies the win predicate. States are deduplicated
// by canonical signature, so revisiting a container permutation of an
// already-expanded state is impossible.
func Solve(start *State, p SearchParams) SearchResult {
	if p.MaxStates <= 0 || p.MaxDepth <= 0 {
		def := DefaultSearchParams()
		if p.MaxStates <= 0 {
			p.MaxStates = def.MaxStates
		}
		if p.MaxDepth <= 0 {
			p.MaxDepth = def.MaxDepth
		}
	}

	root := start.Clone()
	baseline := len(root.History)

	if IsSolved(root) {
		return SearchResult{Status: StatusSolved, StatesExplored: 1}
	}

	seen := map[string]struct{}{root.Signature(): {}}
	queue := []searchNode{{state: root, depth: 0}}
	explored := 1
	truncated := false
	maxDepthSeen := 0

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node.depth >= p.MaxDepth {
			truncated = true
			continue
		}

		for _, cand := range rankedMoves(node.state) {
			next := ExecutePour(node.state, cand.move.From, cand.move.To)
			sig := next.Signature()
			if _, dup := seen[sig]; dup {
				continue
			}
			seen[sig] = struct{}{}
			explored++

			depth := node.depth + 1
			if depth > maxDepthSeen {
				maxDepthSeen = depth
			}

			if IsSolved(next) {
				return SearchResult{
					Status:         StatusSolved,
					Moves:          append([]Move(nil), next.History[baseline:]...),
					StatesExplored: explored,
					Depth:          depth,
				}
			}

			if explored >= p.MaxStates {
				return SearchResult{
					Status:         StatusUnproven,
					StatesExplored: explored,
					Depth:          maxDepthSeen,
				}
			}

			queue = append(queue, searchNode{state: next, depth: depth})
		}
	}

	status := StatusNoSolution
	if truncated {
		status = StatusUnproven
	}
	return SearchResult{Status: status, StatesExplored: explored, Depth: maxDepthSeen}
}

type scoredMove struct {
	move  Move
	score int
}

// rankedMoves enumerates all legal pours from the state, highest priority
// first.
func rankedMoves(s *State) []scoredMove {
	var moves []scoredMove
	for i := range s.Containers {
		for j := range s.Containers {
			if i == j {
				continue
			}
			from := &s.Containers[i]
			to := &s.Containers[j]
			move, perr := ValidatePour(s, from.ID, to.ID)
			if perr != nil {
				continue
			}
			moves = append(moves, scoredMove{move: move, score: scoreMove(from, to, move)})
		}
	}
	sort.SliceStable(moves, func(a, b int) bool {
		return moves[a].score > moves[b].score
	})
	return moves
}

// scoreMove ranks a validated pour.
func scoreMove(from, to *Container, move Move) int {
	score := 0
	clearsSource := move.Segment.Volume == from.Volume()

	if to.IsEmpty() {
		score += scoreEmptyTarget
		if clearsSource {
			score += scoreClearsSource
		}
	} else {
		score += scoreColorMatch
		if to.Volume()+move.Segment.Volume == to.Capacity {
			score += scoreFillsTarget
		}
		if clearsSource {
			score += scoreEmptiesMatched
		}
	}

	if from.IsFull() && from.IsSorted() {
		score -= penaltyBreakSorted
	}
	return score
}
