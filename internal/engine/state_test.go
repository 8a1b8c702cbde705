package engine

import "testing"

func TestSignatureContainerOrderInvariance(t *testing.T) {
	a := testState(4,
		[]Segment{seg(ColorRed, 2), seg(ColorBlue, 2)},
		[]Segment{seg(ColorGreen, 1)},
		nil)
	b := testState(4,
		nil,
		[]Segment{seg(ColorGreen, 1)},
		[]Segment{seg(ColorRed, 2), seg(ColorBlue, 2)})

	if a.Signature() != b.Signature() {
		t.Errorf("permuted containers produced different signatures:\n%q\n%q",
			a.Signature(), b.Signature())
	}
}

func TestSignatureSensitiveToStackOrder(t *testing.T) {
	a := testState(4, []Segment{seg(ColorRed, 2), seg(ColorBlue, 2)})
	b := testState(4, []Segment{seg(ColorBlue, 2), seg(ColorRed, 2)})

	if a.Signature() == b.Signature() {
		t.Error("reversed stack order produced an identical signature")
	}
}

func TestSignatureSensitiveToVolumes(t *testing.T) {
	a := testState(4, []Segment{seg(ColorRed, 1)}, []Segment{seg(ColorRed, 3)})
	b := testState(4, []Segment{seg(ColorRed, 2)}, []Segment{seg(ColorRed, 2)})

	if a.Signature() == b.Signature() {
		t.Error("different volume splits produced an identical signature")
	}
}

func TestColorVolumesConservedByPours(t *testing.T) {
	s := testState(4,
		[]Segment{seg(ColorBlue, 1), seg(ColorRed, 2)},
		[]Segment{seg(ColorRed, 1)},
		nil)
	before := s.ColorVolumes()

	next := ExecutePour(s, 0, 1)
	next = ExecutePour(next, 0, 2)

	after := next.ColorVolumes()
	for color, volume := range before {
		if after[color] != volume {
			t.Errorf("color %v volume %d -> %d across pours", color, volume, after[color])
		}
	}
	if len(after) != len(before) {
		t.Errorf("color set changed: %d -> %d", len(before), len(after))
	}
}

func TestStateCloneIsolation(t *testing.T) {
	s := testState(4, []Segment{seg(ColorRed, 2)}, nil)
	clone := s.Clone()
	clone.Containers[0].Segments[0].Volume = 99
	clone.History = append(clone.History, Move{From: 0, To: 1})

	if s.Containers[0].Segments[0].Volume != 2 {
		t.Error("clone shares segment storage with the original")
	}
	if len(s.History) != 0 {
		t.Error("clone shares history with the original")
	}
}

func TestContainerLookup(t *testing.T) {
	s := testState(4, nil, []Segment{seg(ColorRed, 1)})
	if c := s.Container(1); c == nil || c.ID != 1 {
		t.Error("Container(1) lookup failed")
	}
	if c := s.Container(42); c != nil {
		t.Error("Container(42) returned a container for an unknown ID")
	}
}
