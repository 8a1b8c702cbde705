// Package liquidsort implements the liquid sort puzzle as a playable mode.
// The player pours liquid between containers until every color sits in its
// own container. Levels are generated on reset and verified solvable.
package liquidsort

import (
	"fmt"

	"github.com/vovakirdan/tui-liquidsort/internal/config"
	"github.com/vovakirdan/tui-liquidsort/internal/core"
	"github.com/vovakirdan/tui-liquidsort/internal/engine"
	"github.com/vovakirdan/tui-liquidsort/internal/registry"
)

// Package-level selection, set by the CLI or menu before Reset.
var (
	configPath       string
	difficultyPreset = string(config.DifficultyNormal)
	presetLevel      *engine.Level
)

// SetConfigPath sets the config file path used for level generation.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects the difficulty for generated levels.
// Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	if config.ValidPreset(preset) {
		difficultyPreset = preset
	}
}

// CurrentDifficulty returns the selected difficulty preset.
func CurrentDifficulty() string {
	return difficultyPreset
}

// SetLevel pins a specific level to play instead of generating one.
// Used by `liquidsort play --level <file>`.
func SetLevel(l engine.Level) {
	clone := l.Clone()
	presetLevel = &clone
}

// ClearLevel returns to generated levels.
func ClearLevel() {
	presetLevel = nil
}

// Search budget for in-game hints. Smaller than the generation budget so a
// hint never stalls the input loop for long.
var hintSearch = engine.SearchParams{MaxStates: 30000, MaxDepth: 64}

// Game implements the liquid sort puzzle.
type Game struct {
	level engine.Level
	state *engine.State
	undo  []*engine.State

	cursor   int // Container under the cursor
	selected int // Picked pour source, -1 when none
	cols     int // Containers per display row

	moves     int
	ticks     uint64
	firstMove uint64 // Tick of the first pour, 0 until then
	wonAt     uint64
	tickRate  int

	message  string
	hintFrom int
	hintTo   int

	won    bool
	stuck  bool
	paused bool

	screenW int
	screenH int
	seed    int64
}

// New creates a new liquid sort game.
func New() *Game {
	return &Game{selected: -1, hintFrom: -1, hintTo: -1}
}

func init() {
	registry.Register("liquidsort", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "liquidsort"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Liquid Sort"
}

// Reset initializes/restarts the game with a fresh level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 30
	}
	g.seed = cfg.Seed

	g.level = g.pickLevel()
	g.state = g.level.NewState()
	g.undo = nil
	g.cursor = 0
	g.selected = -1
	g.moves = 0
	g.ticks = 0
	g.firstMove = 0
	g.wonAt = 0
	g.message = ""
	g.hintFrom = -1
	g.hintTo = -1
	g.won = false
	g.paused = false
	// Hand-written levels may start with no legal pour at all
	g.stuck = engine.IsLost(g.state)
	g.layoutColumns()
}

// pickLevel returns the pinned level if one is set, otherwise generates a
// level for the selected difficulty. Generation failures fall back to the
// built-in level so the player always gets something playable.
func (g *Game) pickLevel() engine.Level {
	if presetLevel != nil {
		return presetLevel.Clone()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultLiquidConfig()
	}
	preset := config.DifficultyPreset(difficultyPreset)
	config.ApplyPreset(&cfg, preset)

	id := fmt.Sprintf("%s-%08x", difficultyPreset, uint32(g.seed))
	params := cfg.GenParams(id, preset, uint64(g.seed))

	level, err := engine.GenerateLevel(params)
	if err != nil {
		return engine.FallbackLevel(id)
	}
	return level
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.ticks++

	if input.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
			Seed:     g.seed + 1, // New puzzle on restart
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.won && !g.stuck {
		g.paused = !g.paused
	}

	if g.won || g.stuck || g.paused {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	return core.StepResult{State: g.State()}
}

// processInput handles cursor movement and pour actions.
func (g *Game) processInput(input core.InputFrame) {
	n := len(g.state.Containers)

	switch {
	case input.Has(core.ActionLeft):
		g.cursor = (g.cursor + n - 1) % n
	case input.Has(core.ActionRight):
		g.cursor = (g.cursor + 1) % n
	case input.Has(core.ActionUp):
		if g.cursor-g.cols >= 0 {
			g.cursor -= g.cols
		}
	case input.Has(core.ActionDown):
		if g.cursor+g.cols < n {
			g.cursor += g.cols
		}
	}

	switch {
	case input.Has(core.ActionSelect):
		g.handleSelect()
	case input.Has(core.ActionCancel):
		g.selected = -1
		g.message = ""
	case input.Has(core.ActionUndo):
		g.handleUndo()
	case input.Has(core.ActionHint):
		g.handleHint()
	}
}

// handleSelect picks a pour source or executes a pour into the target.
func (g *Game) handleSelect() {
	g.clearHint()

	if g.selected < 0 {
		c := g.state.Container(g.cursor)
		if c == nil || c.IsEmpty() {
			g.message = "Nothing to pour from here"
			return
		}
		g.selected = g.cursor
		g.message = ""
		return
	}

	if g.selected == g.cursor {
		g.selected = -1
		return
	}

	_, perr := engine.ValidatePour(g.state, g.selected, g.cursor)
	if perr != nil {
		g.message = pourMessage(perr.Reason)
		return
	}

	g.undo = append(g.undo, g.state)
	g.state = engine.ExecutePour(g.state, g.selected, g.cursor)
	g.moves = len(g.state.History)
	g.selected = -1
	g.message = ""
	if g.firstMove == 0 {
		g.firstMove = g.ticks
	}

	switch {
	case engine.IsSolved(g.state):
		g.won = true
		g.wonAt = g.ticks
	case engine.IsLost(g.state):
		g.stuck = true
	}
}

// handleUndo restores the state before the last pour.
func (g *Game) handleUndo() {
	if len(g.undo) == 0 {
		g.message = "Nothing to undo"
		return
	}
	g.clearHint()
	g.state = g.undo[len(g.undo)-1]
	g.undo = g.undo[:len(g.undo)-1]
	g.moves = len(g.state.History)
	g.selected = -1
	g.stuck = false
	g.message = "Undone"
}

// handleHint asks the solver for the next pour and highlights it.
func (g *Game) handleHint() {
	result := engine.Solve(g.state, hintSearch)
	if !result.Solvable() || len(result.Moves) == 0 {
		g.message = "No hint available"
		return
	}
	next := result.Moves[0]
	g.hintFrom = next.From
	g.hintTo = next.To
	g.message = fmt.Sprintf("Hint: pour %d into %d", next.From+1, next.To+1)
}

func (g *Game) clearHint() {
	g.hintFrom = -1
	g.hintTo = -1
}

// pourMessage maps a rejection reason to a status line.
func pourMessage(r engine.PourReason) string {
	switch r {
	case engine.PourSameContainer:
		return "Pick a different container"
	case engine.PourEmptySource:
		return "Source is empty"
	case engine.PourContainerFull:
		return "Target is full"
	case engine.PourColorMismatch:
		return "Colors do not match"
	case engine.PourInsufficientCapacity:
		return "Not enough room for the whole pour"
	default:
		return "Cannot pour there"
	}
}

// DurationSecs returns the wall-clock seconds between the first pour and
// the win, at the configured tick rate. Zero until the level is won.
func (g *Game) DurationSecs() int {
	if !g.won || g.wonAt < g.firstMove {
		return 0
	}
	return int(g.wonAt-g.firstMove) / g.tickRate
}

// Level returns the level being played.
func (g *Game) Level() engine.Level {
	return g.level
}

// Moves returns the number of pours made so far.
func (g *Game) Moves() int {
	return g.moves
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.moves,
		GameOver: g.won || g.stuck,
		Won:      g.won,
		Paused:   g.paused,
	}
}
