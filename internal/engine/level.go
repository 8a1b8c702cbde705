package engine

// Level is a generated puzzle: a scrambled, verified-solvable arrangement
// of containers. Created once by the generator/optimizer pipeline and
// immutable thereafter.
type Level struct {
	ID         string
	Difficulty string
	ColorCount int
	Capacity   int
	Containers []Container
	Tags       []string
}

// ContainerCount returns the number of containers in the level.
func (l Level) ContainerCount() int {
	return len(l.Containers)
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	clone := l
	clone.Containers = make([]Container, len(l.Containers))
	for i, c := range l.Containers {
		clone.Containers[i] = c.Clone()
	}
	clone.Tags = append([]string(nil), l.Tags...)
	return clone
}

// NewState creates the initial game state for this level.
func (l Level) NewState() *State {
	return NewState(l.Containers)
}

// ColorsUsed returns the distinct colors present, in palette order.
func (l Level) ColorsUsed() []Color {
	present := make(map[Color]bool)
	for _, c := range l.Containers {
		for _, seg := range c.Segments {
			present[seg.Color] = true
		}
	}
	colors := make([]Color, 0, len(present))
	for _, c := range Palette() {
		if present[c] {
			colors = append(colors, c)
		}
	}
	return colors
}

// Signature returns the canonical signature of the level's initial state.
// Used by callers to discard structural near-duplicates across runs.
func (l Level) Signature() string {
	return l.NewState().Signature()
}

// FallbackLevel returns a small hand-authored puzzle that is known to be
// solvable. Substituted by callers when generation exhausts its attempt
// budget rather than surfacing an error to the player-facing layer.
//
// Solution: 0->4, 1->0, 1->4, 3->2.
func FallbackLevel(id string) Level {
	capacity := 4
	return Level{
		ID:         id,
		Difficulty: "easy",
		ColorCount: 3,
		Capacity:   capacity,
		Tags:       []string{"fallback"},
		Containers: []Container{
			{ID: 0, Capacity: capacity, Segments: []Segment{
				{Color: ColorRed, Volume: 2},
				{Color: ColorGreen, Volume: 2},
			}},
			{ID: 1, Capacity: capacity, Segments: []Segment{
				{Color: ColorGreen, Volume: 2},
				{Color: ColorRed, Volume: 2},
			}},
			{ID: 2, Capacity: capacity, Segments: []Segment{
				{Color: ColorBlue, Volume: 2},
			}},
			{ID: 3, Capacity: capacity, Segments: []Segment{
				{Color: ColorBlue, Volume: 2},
			}},
			{ID: 4, Capacity: capacity},
		},
	}
}
