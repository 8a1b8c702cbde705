package engine

import "errors"

// Container push errors. These indicate a bug in the calling layer: a pour
// must be validated before its segments are pushed.
var (
	ErrColorClash = errors.New("engine: push color does not match non-empty top")
	ErrOverfill   = errors.New("engine: push volume exceeds remaining capacity")
)

// Segment is a contiguous run of one color occupying part of a container.
// Segments are immutable values; two segments combine iff they share a color.
type Segment struct {
	Color  Color
	Volume int
}

// Container is an ordered stack of liquid segments with a fixed capacity.
// Segments are stored bottom to top. After any mutation no two adjacent
// segments share a color.
type Container struct {
	ID       int
	Capacity int
	Segments []Segment
}

// NewContainer creates an empty container.
func NewContainer(id, capacity int) Container {
	return Container{ID: id, Capacity: capacity}
}

// Volume returns the total liquid volume held.
func (c Container) Volume() int {
	total := 0
	for _, s := range c.Segments {
		total += s.Volume
	}
	return total
}

// RemainingCapacity returns the free space left.
func (c Container) RemainingCapacity() int {
	return c.Capacity - c.Volume()
}

// IsEmpty reports whether the container holds no liquid.
func (c Container) IsEmpty() bool {
	return len(c.Segments) == 0
}

// IsFull reports whether the container is filled to capacity.
func (c Container) IsFull() bool {
	return c.Volume() == c.Capacity
}

// IsSorted reports whether at most one distinct color is present.
func (c Container) IsSorted() bool {
	return len(c.Segments) <= 1
}

// SingleColor returns the container's color if it holds exactly one
// distinct color. The second return is false for empty or mixed containers.
func (c Container) SingleColor() (Color, bool) {
	if len(c.Segments) != 1 {
		return 0, false
	}
	return c.Segments[0].Color, true
}

// TopSegment returns the topmost segment, if any.
func (c Container) TopSegment() (Segment, bool) {
	if len(c.Segments) == 0 {
		return Segment{}, false
	}
	return c.Segments[len(c.Segments)-1], true
}

// TopRun returns the maximal same-colored run at the top of the container.
// This, not just the top segment, is what a single pour moves. With the
// adjacency invariant maintained the run equals the top segment, but TopRun
// also tolerates unnormalized input (e.g. hand-written level files).
func (c Container) TopRun() (Segment, bool) {
	if len(c.Segments) == 0 {
		return Segment{}, false
	}
	run := c.Segments[len(c.Segments)-1]
	for i := len(c.Segments) - 2; i >= 0; i-- {
		if c.Segments[i].Color != run.Color {
			break
		}
		run.Volume += c.Segments[i].Volume
	}
	return run, true
}

// CanAccept reports whether a run of the given color and volume may be
// poured in: the container is empty or its top color matches, and the
// remaining capacity covers the full volume.
func (c Container) CanAccept(color Color, volume int) bool {
	if volume <= 0 || c.RemainingCapacity() < volume {
		return false
	}
	top, ok := c.TopSegment()
	if !ok {
		return true
	}
	return top.Color == color
}

// Push adds a segment under pour rules: it merges into a same-colored top
// run, errors on a color mismatch with a non-empty top, and errors when the
// volume does not fit.
func (c *Container) Push(seg Segment) error {
	if c.RemainingCapacity() < seg.Volume {
		return ErrOverfill
	}
	if top, ok := c.TopSegment(); ok && top.Color != seg.Color {
		return ErrColorClash
	}
	c.place(seg)
	return nil
}

// place stacks a segment on top regardless of color, merging with a
// same-colored top. Used by the scrambler, which deliberately creates
// mixtures; capacity must be checked by the caller.
func (c *Container) place(seg Segment) {
	if seg.Volume <= 0 {
		return
	}
	if n := len(c.Segments); n > 0 && c.Segments[n-1].Color == seg.Color {
		c.Segments[n-1].Volume += seg.Volume
		return
	}
	c.Segments = append(c.Segments, seg)
}

// PopTopRun removes and returns the top continuous run.
// Returns false if the container is empty.
func (c *Container) PopTopRun() (Segment, bool) {
	run, ok := c.TopRun()
	if !ok {
		return Segment{}, false
	}
	remaining := run.Volume
	for remaining > 0 {
		top := c.Segments[len(c.Segments)-1]
		c.Segments = c.Segments[:len(c.Segments)-1]
		remaining -= top.Volume
	}
	return run, true
}

// popVolume removes the given volume off the top of the container and
// returns the removed segments top-first. The caller guarantees the volume
// is available. Used by the scrambler's partial split operation.
func (c *Container) popVolume(volume int) []Segment {
	var removed []Segment
	for volume > 0 && len(c.Segments) > 0 {
		top := c.Segments[len(c.Segments)-1]
		if top.Volume > volume {
			c.Segments[len(c.Segments)-1].Volume -= volume
			removed = append(removed, Segment{Color: top.Color, Volume: volume})
			return removed
		}
		c.Segments = c.Segments[:len(c.Segments)-1]
		removed = append(removed, top)
		volume -= top.Volume
	}
	return removed
}

// MergeAdjacent normalizes the container by merging adjacent same-colored
// segments. Idempotent; total volume per color is unchanged.
func (c *Container) MergeAdjacent() {
	if len(c.Segments) < 2 {
		return
	}
	merged := c.Segments[:1]
	for _, s := range c.Segments[1:] {
		if merged[len(merged)-1].Color == s.Color {
			merged[len(merged)-1].Volume += s.Volume
		} else {
			merged = append(merged, s)
		}
	}
	c.Segments = merged
}

// Clone returns a deep copy. Containers are value-copied on every state
// transition so no two states share segment storage.
func (c Container) Clone() Container {
	clone := c
	clone.Segments = make([]Segment, len(c.Segments))
	copy(clone.Segments, c.Segments)
	return clone
}
