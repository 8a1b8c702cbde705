package liquidsort

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-liquidsort/internal/core"
	"github.com/vovakirdan/tui-liquidsort/internal/engine"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}
}

// newPinnedGame starts a game on the built-in level so tests are
// deterministic and never pay generation cost.
func newPinnedGame(t *testing.T) *Game {
	t.Helper()
	SetLevel(engine.FallbackLevel("test-level"))
	t.Cleanup(ClearLevel)

	g := New()
	g.Reset(testConfig())
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	frame := core.NewInputFrame()
	for _, a := range actions {
		frame.Set(a)
	}
	return g.Step(frame)
}

// moveCursorTo walks the cursor right until it sits on the target container.
func moveCursorTo(t *testing.T, g *Game, target int) {
	t.Helper()
	for i := 0; i < len(g.state.Containers)+1; i++ {
		if g.cursor == target {
			return
		}
		step(g, core.ActionRight)
	}
	t.Fatalf("cursor never reached container %d", target)
}

func TestResetWithPinnedLevel(t *testing.T) {
	g := newPinnedGame(t)

	if g.level.ID != "test-level" {
		t.Errorf("level ID = %s, want test-level", g.level.ID)
	}
	if g.moves != 0 || g.won || g.stuck || g.paused {
		t.Errorf("fresh game has stale state: %+v", g.State())
	}
	if g.selected != -1 {
		t.Errorf("selected = %d, want -1", g.selected)
	}
	if len(g.state.Containers) != g.level.ContainerCount() {
		t.Error("state not built from the level")
	}
}

func TestCursorMovement(t *testing.T) {
	g := newPinnedGame(t)
	n := len(g.state.Containers)

	step(g, core.ActionRight)
	if g.cursor != 1 {
		t.Errorf("cursor = %d after right, want 1", g.cursor)
	}

	step(g, core.ActionLeft)
	step(g, core.ActionLeft)
	if g.cursor != n-1 {
		t.Errorf("cursor = %d, want wrap to %d", g.cursor, n-1)
	}

	step(g, core.ActionRight)
	if g.cursor != 0 {
		t.Errorf("cursor = %d, want wrap to 0", g.cursor)
	}
}

func TestSelectRequiresLiquid(t *testing.T) {
	g := newPinnedGame(t)

	// The fallback level keeps its last container empty
	moveCursorTo(t, g, len(g.state.Containers)-1)
	step(g, core.ActionSelect)
	if g.selected != -1 {
		t.Error("empty container should not be selectable as a source")
	}
	if g.message == "" {
		t.Error("rejected selection should set a status message")
	}
}

func TestSelectTwiceDeselects(t *testing.T) {
	g := newPinnedGame(t)

	step(g, core.ActionSelect)
	if g.selected != 0 {
		t.Fatalf("selected = %d, want 0", g.selected)
	}
	step(g, core.ActionSelect)
	if g.selected != -1 {
		t.Error("selecting the same container again should deselect")
	}
}

func TestCancelDeselects(t *testing.T) {
	g := newPinnedGame(t)

	step(g, core.ActionSelect)
	step(g, core.ActionCancel)
	if g.selected != -1 {
		t.Error("cancel should clear the selection")
	}
}

func TestPourExecutes(t *testing.T) {
	g := newPinnedGame(t)
	empty := len(g.state.Containers) - 1

	step(g, core.ActionSelect) // pick container 0
	moveCursorTo(t, g, empty)
	step(g, core.ActionSelect) // pour into the empty container

	if g.moves != 1 {
		t.Fatalf("moves = %d after a legal pour, want 1", g.moves)
	}
	if g.selected != -1 {
		t.Error("selection should clear after a pour")
	}
	if g.state.Container(empty).IsEmpty() {
		t.Error("target should have received the poured run")
	}
	if len(g.undo) != 1 {
		t.Errorf("undo stack depth = %d, want 1", len(g.undo))
	}
}

func TestRejectedPourLeavesStateAlone(t *testing.T) {
	g := newPinnedGame(t)
	before := g.state.Signature()

	// Container 0 tops green, container 1 tops red: mismatch
	step(g, core.ActionSelect)
	moveCursorTo(t, g, 1)
	step(g, core.ActionSelect)

	if g.moves != 0 {
		t.Errorf("moves = %d after a rejected pour, want 0", g.moves)
	}
	if g.state.Signature() != before {
		t.Error("rejected pour must not change the state")
	}
	if g.selected != 0 {
		t.Error("source selection should survive a rejected pour")
	}
	if !strings.Contains(g.message, "match") {
		t.Errorf("message = %q, want a mismatch explanation", g.message)
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	g := newPinnedGame(t)
	before := g.state.Signature()
	empty := len(g.state.Containers) - 1

	step(g, core.ActionSelect)
	moveCursorTo(t, g, empty)
	step(g, core.ActionSelect)
	if g.moves != 1 {
		t.Fatal("setup pour did not execute")
	}

	step(g, core.ActionUndo)
	if g.moves != 0 {
		t.Errorf("moves = %d after undo, want 0", g.moves)
	}
	if g.state.Signature() != before {
		t.Error("undo should restore the prior state")
	}

	step(g, core.ActionUndo)
	if g.message != "Nothing to undo" {
		t.Errorf("empty undo message = %q", g.message)
	}
}

// winSequence pours the known solution of the built-in level.
func winSequence(t *testing.T, g *Game) {
	t.Helper()
	for _, mv := range [][2]int{{0, 4}, {1, 0}, {1, 4}, {3, 2}} {
		moveCursorTo(t, g, mv[0])
		step(g, core.ActionSelect)
		moveCursorTo(t, g, mv[1])
		step(g, core.ActionSelect)
	}
}

func TestWinDetection(t *testing.T) {
	g := newPinnedGame(t)
	winSequence(t, g)

	st := g.State()
	if !st.Won || !st.GameOver {
		t.Fatalf("solved level not detected: %+v", st)
	}
	if st.Score != 4 {
		t.Errorf("score = %d, want 4 moves", st.Score)
	}

	// Input other than restart is ignored once won
	movesBefore := g.moves
	step(g, core.ActionSelect)
	if g.moves != movesBefore {
		t.Error("input after win should be ignored")
	}
}

func TestStuckOnDeadLevel(t *testing.T) {
	dead := engine.Level{
		ID:         "dead",
		Capacity:   2,
		ColorCount: 2,
		Containers: []engine.Container{
			{ID: 0, Capacity: 2, Segments: []engine.Segment{
				{Color: engine.ColorGreen, Volume: 1}, {Color: engine.ColorRed, Volume: 1},
			}},
			{ID: 1, Capacity: 2, Segments: []engine.Segment{
				{Color: engine.ColorRed, Volume: 1}, {Color: engine.ColorGreen, Volume: 1},
			}},
		},
	}
	SetLevel(dead)
	t.Cleanup(ClearLevel)

	g := New()
	g.Reset(testConfig())

	st := g.State()
	if !st.GameOver || st.Won {
		t.Errorf("level with no legal pour should be stuck: %+v", st)
	}
}

func TestHint(t *testing.T) {
	g := newPinnedGame(t)

	step(g, core.ActionHint)
	if g.hintFrom < 0 || g.hintTo < 0 {
		t.Fatalf("hint not set: from=%d to=%d (%s)", g.hintFrom, g.hintTo, g.message)
	}
	if _, perr := engine.ValidatePour(g.state, g.hintFrom, g.hintTo); perr != nil {
		t.Errorf("hinted pour %d->%d is not legal: %v", g.hintFrom, g.hintTo, perr)
	}
	if !strings.Contains(g.message, "Hint") {
		t.Errorf("message = %q, want hint text", g.message)
	}

	// The next selection clears the highlight
	step(g, core.ActionSelect)
	if g.hintFrom != -1 || g.hintTo != -1 {
		t.Error("selection should clear the hint highlight")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newPinnedGame(t)

	step(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("pause did not engage")
	}

	step(g, core.ActionRight)
	if g.cursor != 0 {
		t.Error("cursor moved while paused")
	}

	step(g, core.ActionPause)
	if g.State().Paused {
		t.Error("pause did not release")
	}
}

func TestRestartStartsFresh(t *testing.T) {
	g := newPinnedGame(t)
	empty := len(g.state.Containers) - 1

	step(g, core.ActionSelect)
	moveCursorTo(t, g, empty)
	step(g, core.ActionSelect)
	if g.moves != 1 {
		t.Fatal("setup pour did not execute")
	}

	step(g, core.ActionRestart)
	if g.moves != 0 || g.cursor != 0 || len(g.undo) != 0 {
		t.Errorf("restart left stale state: moves=%d cursor=%d undo=%d", g.moves, g.cursor, len(g.undo))
	}
}

func TestDurationSecs(t *testing.T) {
	g := newPinnedGame(t)

	if g.DurationSecs() != 0 {
		t.Error("duration should be zero before winning")
	}

	// Burn ticks between the first pour and the win
	winSequence(t, g)
	for i := 0; i < 60; i++ {
		step(g)
	}

	if !g.won {
		t.Fatal("win sequence failed")
	}
	if g.DurationSecs() < 0 {
		t.Errorf("duration = %d, want non-negative", g.DurationSecs())
	}
}

func TestRenderSmoke(t *testing.T) {
	g := newPinnedGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Liquid Sort") {
		t.Error("HUD missing from render output")
	}
	if !strings.Contains(out, "└") {
		t.Error("container tubes missing from render output")
	}
	// The fallback level holds red, green and blue liquid
	for _, ch := range []string{"R", "G", "B"} {
		if !strings.Contains(out, ch) {
			t.Errorf("liquid %s missing from render output", ch)
		}
	}
}

func TestRenderWinOverlay(t *testing.T) {
	g := newPinnedGame(t)
	winSequence(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Solved!") {
		t.Error("win overlay missing")
	}
}

func TestGeneratedLevelIsPlayable(t *testing.T) {
	ClearLevel()
	SetDifficultyPreset("easy")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 3})

	if len(g.state.Containers) == 0 {
		t.Fatal("no containers in generated level")
	}
	if engine.IsSolved(g.state) {
		t.Error("generated level must not start solved")
	}
	if g.State().GameOver {
		t.Error("generated level must start with a legal pour available")
	}
}
