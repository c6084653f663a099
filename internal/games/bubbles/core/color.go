package core

import "strings"

// Color identifies the kind of bubble stored in a cell.
type Color uint8

const (
	ColorRed Color = iota
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorCyan
	ColorBomb
	ColorRainbow
)

// NormalColors lists the colors that take part in regular matching.
var NormalColors = []Color{
	ColorRed,
	ColorBlue,
	ColorGreen,
	ColorYellow,
	ColorPurple,
	ColorCyan,
}

// IsSpecial reports whether the color is resolved by explosion logic
// instead of same-color matching.
func (c Color) IsSpecial() bool {
	return c == ColorBomb || c == ColorRainbow
}

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorCyan:
		return "cyan"
	case ColorBomb:
		return "bomb"
	case ColorRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// Char returns the layout character used for this color in level files.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorBlue:
		return 'B'
	case ColorGreen:
		return 'G'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	case ColorCyan:
		return 'C'
	case ColorBomb:
		return '*'
	case ColorRainbow:
		return '@'
	default:
		return '?'
	}
}

// ColorFromChar maps a layout character to a color.
// Any character without a mapping means "no cell".
func ColorFromChar(r rune) (Color, bool) {
	switch r {
	case 'R', 'r':
		return ColorRed, true
	case 'B', 'b':
		return ColorBlue, true
	case 'G', 'g':
		return ColorGreen, true
	case 'Y', 'y':
		return ColorYellow, true
	case 'P', 'p':
		return ColorPurple, true
	case 'C', 'c':
		return ColorCyan, true
	case '*':
		return ColorBomb, true
	case '@':
		return ColorRainbow, true
	default:
		return 0, false
	}
}

// ParseColor parses a color name (case-insensitive).
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "blue", "b":
		return ColorBlue, true
	case "green", "g":
		return ColorGreen, true
	case "yellow", "y":
		return ColorYellow, true
	case "purple", "p", "magenta":
		return ColorPurple, true
	case "cyan", "c":
		return ColorCyan, true
	case "bomb":
		return ColorBomb, true
	case "rainbow":
		return ColorRainbow, true
	default:
		return 0, false
	}
}

// CellState is the lifecycle stage of a cell on the board.
type CellState uint8

const (
	CellStationary CellState = iota
	CellActive
	CellPopping
	CellFalling
)

func (s CellState) String() string {
	switch s {
	case CellStationary:
		return "stationary"
	case CellActive:
		return "active"
	case CellPopping:
		return "popping"
	case CellFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// Cell is a single bubble stored at a grid position.
type Cell struct {
	ID    int
	Color Color
	State CellState
}
