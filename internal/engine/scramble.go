package engine

// The scrambler builds a trivially solved configuration and walks it
// backwards through randomized inverse pour operations. Every inverse op is
// the logical reverse of a legal pour, so the scrambled result is reachable
// back to the solved state by construction.

type opKind int

const (
	// opSplit takes part of a unified color off a single-color container
	// and places it in an empty container. Never onto another color: a
	// player cannot split one pour across two different targets, so the
	// inverse must target only empty containers.
	opSplit opKind = iota
	// opMix moves the top run of one container onto a container whose top
	// color differs, up to the target's remaining capacity. This is what
	// introduces player-visible disorder.
	opMix
	// opMoveToEmpty relocates a non-bottom run to an empty container.
	opMoveToEmpty
)

type inverseOp struct {
	kind opKind
	from int // index into the container slice
	to   int
}

type scrambler struct {
	rng     *SimpleRNG
	visited map[string]struct{}
}

// buildSolvedSeed creates the trivially solved start: one container per
// color filled to capacity, shaved from the trailing colors round-robin
// until the empty-slot remainder is absorbed, plus whole empty containers
// for the rest of the budget. Free slots always total exactly emptySlots.
// The remainder is at most capacity-1, so round-robin shaving never
// empties a color even when the remainder exceeds the color count.
func buildSolvedSeed(colors []Color, capacity, emptySlots int) []Container {
	emptyContainers := emptySlots / capacity
	remainder := emptySlots % capacity

	shave := make([]int, len(colors))
	for k := 0; k < remainder; k++ {
		shave[len(colors)-1-k%len(colors)]++
	}

	containers := make([]Container, 0, len(colors)+emptyContainers)
	for i, color := range colors {
		c := NewContainer(i, capacity)
		c.place(Segment{Color: color, Volume: capacity - shave[i]})
		containers = append(containers, c)
	}
	for i := 0; i < emptyContainers; i++ {
		containers = append(containers, NewContainer(len(colors)+i, capacity))
	}
	return containers
}

// scramble applies up to targetMoves inverse operations, rejecting any that
// revisit a configuration already seen (prevents oscillation and no-op
// cycles). Terminates early with whatever disorder was achieved once no
// fresh configuration is found within the attempt bound.
func (sc *scrambler) scramble(containers []Container, targetMoves int) []Container {
	sc.visited[signatureOf(containers)] = struct{}{}

	moves := 0
	attempts := 0
	maxAttempts := targetMoves * 8
	for moves < targetMoves && attempts < maxAttempts {
		ops := legalInverseOps(containers)
		if len(ops) == 0 {
			break
		}
		op := ops[sc.rng.Intn(len(ops))]

		candidate := cloneContainers(containers)
		if !sc.applyOp(candidate, op) {
			attempts++
			continue
		}
		sig := signatureOf(candidate)
		if _, dup := sc.visited[sig]; dup {
			attempts++
			continue
		}

		sc.visited[sig] = struct{}{}
		containers = candidate
		moves++
	}
	return containers
}

// legalInverseOps enumerates every inverse operation currently applicable.
func legalInverseOps(containers []Container) []inverseOp {
	var ops []inverseOp
	for i := range containers {
		from := &containers[i]
		run, ok := from.TopRun()
		if !ok {
			continue
		}
		for j := range containers {
			if i == j {
				continue
			}
			to := &containers[j]

			if to.IsEmpty() {
				if _, single := from.SingleColor(); single && run.Volume >= 2 {
					ops = append(ops, inverseOp{kind: opSplit, from: i, to: j})
				}
				if len(from.Segments) >= 2 {
					ops = append(ops, inverseOp{kind: opMoveToEmpty, from: i, to: j})
				}
				continue
			}

			top, _ := to.TopSegment()
			if top.Color != run.Color && to.RemainingCapacity() >= 1 {
				ops = append(ops, inverseOp{kind: opMix, from: i, to: j})
			}
		}
	}
	return ops
}

// applyOp mutates the candidate container slice in place. Returns false if
// the op turned out not to be applicable (defends against races between
// enumeration and random volume choice; enumeration guarantees the rest).
func (sc *scrambler) applyOp(containers []Container, op inverseOp) bool {
	from := &containers[op.from]
	to := &containers[op.to]

	switch op.kind {
	case opSplit:
		run, ok := from.TopRun()
		if !ok || run.Volume < 2 {
			return false
		}
		volume := 1 + sc.rng.Intn(run.Volume-1)
		if to.RemainingCapacity() < volume {
			volume = to.RemainingCapacity()
		}
		if volume < 1 {
			return false
		}
		for _, seg := range from.popVolume(volume) {
			to.place(seg)
		}
		return true

	case opMix:
		run, ok := from.TopRun()
		if !ok {
			return false
		}
		volume := run.Volume
		if remaining := to.RemainingCapacity(); volume > remaining {
			volume = remaining
		}
		if volume < 1 {
			return false
		}
		for _, seg := range from.popVolume(volume) {
			to.place(seg)
		}
		return true

	case opMoveToEmpty:
		run, ok := from.PopTopRun()
		if !ok {
			return false
		}
		to.place(run)
		return true
	}
	return false
}

// ensureEmptyContainer restores the hard constraint that at least one
// container is empty. A puzzle with no empty space and no two
// matching-topped containers is unplayable by definition, so the
// smallest-volume container is forcibly drained into the others' free
// space.
func ensureEmptyContainer(containers []Container) {
	for _, c := range containers {
		if c.IsEmpty() {
			return
		}
	}

	smallest := 0
	for i := range containers {
		if containers[i].Volume() < containers[smallest].Volume() {
			smallest = i
		}
	}

	src := &containers[smallest]
	for !src.IsEmpty() {
		run, _ := src.TopRun()
		moved := false
		for j := range containers {
			if j == smallest {
				continue
			}
			dst := &containers[j]
			space := dst.RemainingCapacity()
			if space <= 0 {
				continue
			}
			volume := run.Volume
			if volume > space {
				volume = space
			}
			for _, seg := range src.popVolume(volume) {
				dst.place(seg)
			}
			moved = true
			break
		}
		if !moved {
			// No free space anywhere else; leave as-is and let the
			// acceptance validator reject the candidate.
			return
		}
	}
}

// shuffleAndRelabel randomizes container positions and reassigns IDs in the
// new order. Cosmetic: players should not infer generation order from
// container position.
func shuffleAndRelabel(containers []Container, rng *SimpleRNG) {
	rng.Shuffle(len(containers), func(i, j int) {
		containers[i], containers[j] = containers[j], containers[i]
	})
	for i := range containers {
		containers[i].ID = i
	}
}

func cloneContainers(containers []Container) []Container {
	clone := make([]Container, len(containers))
	for i, c := range containers {
		clone[i] = c.Clone()
	}
	return clone
}

func signatureOf(containers []Container) string {
	return (&State{Containers: containers}).Signature()
}
