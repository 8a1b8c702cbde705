package liquidsort

import (
	"fmt"

	"github.com/vovakirdan/tui-liquidsort/internal/core"
	"github.com/vovakirdan/tui-liquidsort/internal/engine"
)

const (
	tubeWidth   = 3 // "│x│"
	tubeSpacing = 2
	hudHeight   = 2
)

// layoutColumns recomputes how many containers fit per display row.
func (g *Game) layoutColumns() {
	n := len(g.level.Containers)
	cols := (g.screenW - 2) / (tubeWidth + tubeSpacing)
	if cols < 1 {
		cols = 1
	}
	if cols > n {
		cols = n
	}
	g.cols = cols
}

// liquidColor maps a puzzle color to a terminal color.
func liquidColor(c engine.Color) core.Color {
	switch c {
	case engine.ColorRed:
		return core.ColorBrightRed
	case engine.ColorGreen:
		return core.ColorGreen
	case engine.ColorBlue:
		return core.ColorBrightBlue
	case engine.ColorYellow:
		return core.ColorBrightYellow
	case engine.ColorPurple:
		return core.ColorMagenta
	case engine.ColorOrange:
		return core.ColorOrange
	case engine.ColorCyan:
		return core.ColorBrightCyan
	case engine.ColorPink:
		return core.ColorBrightMagenta
	case engine.ColorLime:
		return core.ColorBrightGreen
	case engine.ColorTeal:
		return core.ColorCyan
	case engine.ColorBrown:
		return core.ColorYellow
	case engine.ColorGray:
		return core.ColorGray
	default:
		return core.ColorWhite
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)
	g.renderContainers(dst)
	g.renderMessage(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "Solved!", fmt.Sprintf("%d moves — press R for a new puzzle", g.moves))
	case g.stuck:
		g.renderOverlay(dst, "No moves left", "Press U to undo or R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Liquid Sort — Moves: %d  Difficulty: %s  Level: %s",
		g.moves, g.level.Difficulty, g.level.ID)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderContainers draws each container as a vertical tube.
func (g *Game) renderContainers(dst *core.Screen) {
	n := len(g.state.Containers)
	if n == 0 || g.cols == 0 {
		return
	}
	capacity := g.state.Capacity()
	rowHeight := capacity + 3 // marker row + liquid rows + floor + label

	for i := 0; i < n; i++ {
		row := i / g.cols
		col := i % g.cols

		// Center each display row independently
		inRow := g.cols
		if (row+1)*g.cols > n {
			inRow = n - row*g.cols
		}
		rowWidth := inRow*(tubeWidth+tubeSpacing) - tubeSpacing
		x := (dst.Width()-rowWidth)/2 + col*(tubeWidth+tubeSpacing)
		y := hudHeight + 1 + row*rowHeight

		g.renderTube(dst, g.state.Containers[i], x, y, capacity)
	}
}

// renderTube draws one container at (x, y). The marker row sits at y, the
// liquid column below it.
func (g *Game) renderTube(dst *core.Screen, c engine.Container, x, y, capacity int) {
	// Cursor and selection markers above the tube
	if c.ID == g.cursor {
		dst.SetCell(x+1, y, '▼', core.ColorBrightWhite)
	}
	if c.ID == g.selected {
		dst.SetCell(x+1, y, '●', core.ColorBrightYellow)
	}

	sideColor := core.ColorDefault
	switch {
	case c.ID == g.selected:
		sideColor = core.ColorBrightYellow
	case c.ID == g.hintFrom || c.ID == g.hintTo:
		sideColor = core.ColorBrightCyan
	case c.ID == g.cursor:
		sideColor = core.ColorBrightWhite
	}

	// Liquid units bottom to top
	units := make([]engine.Color, 0, c.Volume())
	for _, seg := range c.Segments {
		for v := 0; v < seg.Volume; v++ {
			units = append(units, seg.Color)
		}
	}

	top := y + 1
	for i := 0; i < capacity; i++ {
		rowY := top + i
		dst.SetCell(x, rowY, '│', sideColor)
		dst.SetCell(x+tubeWidth-1, rowY, '│', sideColor)

		unit := capacity - 1 - i // Display top row holds the topmost unit
		if unit < len(units) {
			color := units[unit]
			dst.SetCell(x+1, rowY, color.Char(), liquidColor(color))
		}
	}

	// Floor and label
	floorY := top + capacity
	dst.SetCell(x, floorY, '└', sideColor)
	dst.SetCell(x+1, floorY, '─', sideColor)
	dst.SetCell(x+tubeWidth-1, floorY, '┘', sideColor)
	label := fmt.Sprintf("%d", (c.ID+1)%100)
	dst.DrawText(x+1, floorY+1, label)
}

// renderMessage draws the transient status line above the help line.
func (g *Game) renderMessage(dst *core.Screen) {
	h := dst.Height()
	if g.message != "" {
		dst.DrawTextColored(1, h-2, g.message, core.ColorBrightYellow)
	}
	help := "←/→ move  Space pour  X cancel  U undo  H hint  R restart  Q quit"
	dst.DrawText(1, h-1, help)
}

// renderOverlay draws a centered boxed message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len([]rune(line1))
	if l := len([]rune(line2)); l > maxLen {
		maxLen = l
	}
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2), ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
