package bubbles

import (
	"fmt"
	"math"
	"strings"

	ui "github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// Glyphs used on screen.
const (
	GlyphBubble  = '●'
	GlyphBomb    = '✹'
	GlyphRainbow = '◎'
	GlyphGuide   = '·'
	GlyphDanger  = '┈'
	GlyphCannon  = '▲'
)

// hudGap is the number of columns between the board and the side panel.
const hudGap = 2

// ScreenColor maps a bubble color to a terminal color.
func ScreenColor(c core.Color) ui.Color {
	switch c {
	case core.ColorRed:
		return ui.ColorRed.Bright()
	case core.ColorBlue:
		return ui.ColorBlue.Bright()
	case core.ColorGreen:
		return ui.ColorGreen.Bright()
	case core.ColorYellow:
		return ui.ColorYellow.Bright()
	case core.ColorPurple:
		return ui.ColorMagenta.Bright()
	case core.ColorCyan:
		return ui.ColorCyan.Bright()
	case core.ColorBomb:
		return ui.ColorOrange
	case core.ColorRainbow:
		return ui.ColorBrightWhite
	default:
		return ui.ColorDefault
	}
}

// Glyph returns the rune drawn for a bubble color.
func Glyph(c core.Color) rune {
	switch c {
	case core.ColorBomb:
		return GlyphBomb
	case core.ColorRainbow:
		return GlyphRainbow
	default:
		return GlyphBubble
	}
}

func ammoCell(a core.Ammo) ui.Cell {
	if a.Fireball {
		return ui.Cell{Rune: '◉', Color: ui.ColorOrange}
	}
	return ui.Cell{Rune: Glyph(a.Color), Color: ScreenColor(a.Color)}
}

// BoardRect returns the framed board area for a snapshot, including borders.
// Each column is two characters wide plus one for shifted rows; each row is
// one line. Two extra lines hold the cannon and the gap above it.
func BoardRect(s core.Snapshot) ui.Rect {
	return ui.NewRect(0, 0, 2*s.Cols+1+2, s.Rows+2+2)
}

// Size returns the screen size needed to draw a snapshot with its side panel.
func Size(s core.Snapshot) (w, h int) {
	r := BoardRect(s)
	return r.W + hudGap + 22, ui.Max(r.H, 14)
}

// CellOrigin returns the screen position of a grid cell.
func CellOrigin(s core.Snapshot, pos core.GridPosition) (x, y int) {
	x = 1 + 2*pos.Col
	if core.IsShifted(pos.Row, s.Parity) {
		x++
	}
	return x, 1 + pos.Row
}

// toScreen maps a board pixel position to a screen cell inside the frame.
func toScreen(s core.Snapshot, px, py float64) (x, y int) {
	m := s.Metrics
	col := 0.0
	if m.SpacingX > 0 {
		col = (px - m.PaddingLeft) / m.SpacingX * 2
	}
	row := 0.0
	if m.SpacingY > 0 {
		row = (py - m.PaddingTop - m.Radius()) / m.SpacingY
	}
	r := BoardRect(s)
	x = ui.Clamp(1+int(math.Floor(col)), 1, r.Right()-2)
	y = ui.Clamp(1+int(math.Round(row)), 1, r.Bottom()-2)
	return x, y
}

// Render draws the board, cannon and side panel of a snapshot.
func Render(s core.Snapshot, dst *ui.Screen) {
	dst.Clear()
	frame := BoardRect(s)
	dst.DrawBox(frame, ui.ColorGray)

	dangerY := 1 + s.Rows - 1
	dst.DrawHLine(1, dangerY, frame.W-2, GlyphDanger, ui.ColorRed)

	for _, c := range s.Cells {
		x, y := CellOrigin(s, c.Pos)
		dst.SetCell(x, y, ui.Cell{Rune: Glyph(c.Color), Color: ScreenColor(c.Color)})
	}

	renderCannon(s, dst, frame)

	if s.Flying {
		x, y := toScreen(s, s.Projectile.X, s.Projectile.Y)
		dst.SetCell(x, y, ammoCell(core.Ammo{Color: s.Projectile.Color, Fireball: s.Projectile.Fireball}))
	}

	renderHUD(s, dst, frame.Right()+hudGap)

	switch {
	case s.Outcome == core.OutcomeWon:
		banner(dst, frame, "YOU WIN", ui.ColorBrightGreen)
	case s.Outcome == core.OutcomeLost:
		banner(dst, frame, "GAME OVER", ui.ColorBrightRed)
	case s.Paused:
		banner(dst, frame, "PAUSED", ui.ColorBrightYellow)
	}
}

func renderCannon(s core.Snapshot, dst *ui.Screen, frame ui.Rect) {
	cx := frame.W / 2
	cy := frame.Bottom() - 2
	dst.SetCell(cx, cy, ammoCell(s.Current))
	if s.Outcome != core.OutcomePlaying {
		return
	}

	rad := s.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	guide := ui.Cell{Rune: GlyphGuide, Color: ScreenColor(s.Current.Color)}
	for k := 1.0; k <= 3; k++ {
		x := cx + int(math.Round(2*k*dx))
		y := cy + int(math.Round(k*dy))
		if x <= frame.X || x >= frame.Right()-1 || y <= frame.Y {
			break
		}
		dst.SetCell(x, y, guide)
	}
}

func renderHUD(s core.Snapshot, dst *ui.Screen, x int) {
	y := 1
	line := func(label, value string, c ui.Color) {
		dst.DrawTextColor(x, y, label, ui.ColorGray)
		dst.DrawTextColor(x+len(label), y, value, c)
		y++
	}

	dst.DrawTextColor(x, y, strings.ToUpper(s.Mode.Title()), ui.ColorBrightCyan)
	y++
	if s.LevelName != "" {
		dst.DrawTextColor(x, y, s.LevelName, ui.ColorWhite)
		y++
	}
	y++

	line("Score  ", fmt.Sprintf("%d", s.Score), ui.ColorBrightWhite)
	switch s.Mode {
	case core.ModeAdventure:
		line("Shots  ", fmt.Sprintf("%d", s.ShotsLeft), ui.ColorBrightWhite)
	default:
		line("Fired  ", fmt.Sprintf("%d", s.ShotsFired), ui.ColorBrightWhite)
	}
	if s.TimeLeft >= 0 {
		c := ui.ColorBrightWhite
		if s.TimeLeft <= 10 {
			c = ui.ColorBrightRed
		}
		line("Time   ", fmt.Sprintf("%d", s.TimeLeft), c)
	}

	dst.DrawTextColor(x, y, "Next   ", ui.ColorGray)
	dst.SetCell(x+7, y, ammoCell(s.Next))
	y++

	if s.Objective != "" {
		y++
		dst.DrawTextColor(x, y, "Goal", ui.ColorGray)
		y++
		dst.DrawTextColor(x, y, s.Objective, ui.ColorWhite)
		y++
	}

	if s.Outcome == core.OutcomeWon && s.Stars > 0 {
		y++
		dst.DrawTextColor(x, y, strings.Repeat("★", s.Stars)+strings.Repeat("☆", 3-s.Stars), ui.ColorBrightYellow)
	}
}

func banner(dst *ui.Screen, frame ui.Rect, text string, c ui.Color) {
	y := frame.Y + frame.H/2
	x := frame.X + (frame.W-len(text))/2
	dst.DrawTextColor(x, y, text, c)
}

// ScreenToBoard maps a screen cell inside the frame back to board pixels.
// It is the inverse of the projectile placement, used for mouse aiming.
func ScreenToBoard(s core.Snapshot, x, y int) (px, py float64) {
	m := s.Metrics
	px = m.PaddingLeft + (float64(x-1)+0.5)*m.SpacingX/2
	py = m.PaddingTop + m.Radius() + float64(y-1)*m.SpacingY
	return px, py
}
