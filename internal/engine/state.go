package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Move records a single pour: the source and target container IDs and the
// run that moved.
type Move struct {
	From    int
	To      int
	Segment Segment
	At      time.Time
}

// State is a snapshot of the puzzle: the containers plus the pour history
// that produced them. States are never mutated after creation; every pour
// yields a new State value. The search creates and discards thousands of
// short-lived states per verification call.
type State struct {
	Containers []Container
	History    []Move
	Cursor     int
}

// NewState creates the initial state for a set of containers.
// The containers are deep-copied so the caller's slice stays isolated.
func NewState(containers []Container) *State {
	s := &State{Containers: make([]Container, len(containers))}
	for i, c := range containers {
		s.Containers[i] = c.Clone()
	}
	return s
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	clone := &State{
		Containers: make([]Container, len(s.Containers)),
		History:    make([]Move, len(s.History)),
		Cursor:     s.Cursor,
	}
	for i, c := range s.Containers {
		clone.Containers[i] = c.Clone()
	}
	copy(clone.History, s.History)
	return clone
}

// Container returns a pointer to the container with the given ID.
// Returns nil if the ID is unknown.
func (s *State) Container(id int) *Container {
	for i := range s.Containers {
		if s.Containers[i].ID == id {
			return &s.Containers[i]
		}
	}
	return nil
}

// Capacity returns the container capacity of the puzzle. Generated levels
// use a uniform capacity; for safety the largest one present is returned.
func (s *State) Capacity() int {
	capacity := 0
	for _, c := range s.Containers {
		if c.Capacity > capacity {
			capacity = c.Capacity
		}
	}
	return capacity
}

// ColorVolumes returns the total liquid volume per color across all
// containers. Conserved by every pour.
func (s *State) ColorVolumes() map[Color]int {
	totals := make(map[Color]int)
	for _, c := range s.Containers {
		for _, seg := range c.Segments {
			totals[seg.Color] += seg.Volume
		}
	}
	return totals
}

// EmptyCount returns the number of empty containers.
func (s *State) EmptyCount() int {
	count := 0
	for _, c := range s.Containers {
		if c.IsEmpty() {
			count++
		}
	}
	return count
}

// Signature returns an order-invariant fingerprint of the state, used for
// cycle and duplicate detection during search. Each container is rendered
// as a canonical bottom-to-top string of color:volume pairs, and the
// container strings are sorted: two states whose containers hold the same
// multiset of contents produce identical signatures regardless of container
// positions, while differing stack orders within a container do not collide.
func (s *State) Signature() string {
	keys := make([]string, len(s.Containers))
	for i, c := range s.Containers {
		var sb strings.Builder
		for j, seg := range c.Segments {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(seg.Color)))
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(seg.Volume))
		}
		keys[i] = sb.String()
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
