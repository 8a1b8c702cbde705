// Package engine implements the liquid-sort puzzle engine: container and
// pour mechanics, scramble-based level generation, and a bounded
// breadth-first solvability search. This package is UI-agnostic and
// deterministic.
package engine

import "strings"

// Color represents a liquid color in the game.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorOrange
	ColorCyan
	ColorPink
	ColorLime
	ColorTeal
	ColorBrown
	ColorGray
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	case ColorCyan:
		return "cyan"
	case ColorPink:
		return "pink"
	case ColorLime:
		return "lime"
	case ColorTeal:
		return "teal"
	case ColorBrown:
		return "brown"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	case ColorOrange:
		return 'O'
	case ColorCyan:
		return 'C'
	case ColorPink:
		return 'K'
	case ColorLime:
		return 'L'
	case ColorTeal:
		return 'T'
	case ColorBrown:
		return 'W'
	case ColorGray:
		return 'A'
	default:
		return '?'
	}
}

// ParseColor converts a string to a Color.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red":
		return ColorRed, true
	case "green":
		return ColorGreen, true
	case "blue":
		return ColorBlue, true
	case "yellow":
		return ColorYellow, true
	case "purple":
		return ColorPurple, true
	case "orange":
		return ColorOrange, true
	case "cyan":
		return ColorCyan, true
	case "pink":
		return ColorPink, true
	case "lime":
		return ColorLime, true
	case "teal":
		return ColorTeal, true
	case "brown":
		return ColorBrown, true
	case "gray", "grey":
		return ColorGray, true
	default:
		return ColorRed, false
	}
}

// Palette returns a slice of all valid colors in order.
func Palette() []Color {
	colors := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}

// PaletteSize is the number of distinct colors available to the generator.
const PaletteSize = int(ColorCount)
