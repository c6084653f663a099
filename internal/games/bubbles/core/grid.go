// Package core implements the match-three hex grid engine for the bubble
// shooter. It is UI-agnostic and deterministic: randomness comes from an
// injected Source and nothing here reads the clock or touches the terminal.
package core

import (
	"fmt"
	"math"
)

// GridPosition addresses a cell on the offset hex grid.
// Row grows downward from the ceiling, Col grows to the right.
type GridPosition struct {
	Row int
	Col int
}

// P is a convenience constructor for GridPosition.
func P(row, col int) GridPosition {
	return GridPosition{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p GridPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less orders positions by row, then column.
func (p GridPosition) Less(o GridPosition) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Neighbor offsets as (dRow, dCol). Shifted rows sit half a diameter to the
// right, so their diagonal neighbors are at Col and Col+1 on adjacent rows.
var (
	shiftedOffsets = [6][2]int{
		{0, -1}, {0, 1},
		{-1, 0}, {-1, 1},
		{1, 0}, {1, 1},
	}
	unshiftedOffsets = [6][2]int{
		{0, -1}, {0, 1},
		{-1, -1}, {-1, 0},
		{1, -1}, {1, 0},
	}
)

// IsShifted reports whether row is offset by half a diameter given the
// board's row parity.
func IsShifted(row, parity int) bool {
	return ((row+parity)%2+2)%2 == 1
}

// Neighbors returns the six adjacent positions of pos. Positions may lie
// outside any board; callers filter them.
func Neighbors(pos GridPosition, parity int) [6]GridPosition {
	offsets := &unshiftedOffsets
	if IsShifted(pos.Row, parity) {
		offsets = &shiftedOffsets
	}

	var out [6]GridPosition
	for i, o := range offsets {
		out[i] = GridPosition{Row: pos.Row + o[0], Col: pos.Col + o[1]}
	}
	return out
}

// BoardMetrics describes the pixel geometry of the board. The presentation
// layer owns these values; the engine only converts between spaces.
type BoardMetrics struct {
	Diameter    float64 // Bubble diameter
	SpacingX    float64 // Horizontal distance between column centers
	SpacingY    float64 // Vertical distance between row centers
	PaddingTop  float64
	PaddingLeft float64
	CeilingY    float64 // Y of the ceiling line; projectiles stop here
	Width       float64 // Play area width; walls are at 0 and Width
	Height      float64 // Play area height; the cannon sits at the bottom
}

// Radius returns half the diameter.
func (m BoardMetrics) Radius() float64 {
	return m.Diameter / 2
}

// DefaultMetrics returns metrics for a board of the given column count with
// touching bubbles and hex vertical packing.
func DefaultMetrics(cols, rows int) BoardMetrics {
	const d = 2.0
	spacingY := d * math.Sqrt(3) / 2
	return BoardMetrics{
		Diameter:    d,
		SpacingX:    d,
		SpacingY:    spacingY,
		PaddingTop:  0,
		PaddingLeft: 0,
		CeilingY:    0,
		Width:       float64(cols)*d + d/2,
		Height:      float64(rows)*spacingY + 4*d,
	}
}

// CellCenter returns the pixel center of pos.
func CellCenter(pos GridPosition, m BoardMetrics, parity int) (x, y float64) {
	x = m.PaddingLeft + float64(pos.Col)*m.SpacingX + m.Radius()
	if IsShifted(pos.Row, parity) {
		x += m.Radius()
	}
	y = m.PaddingTop + float64(pos.Row)*m.SpacingY + m.Radius()
	return x, y
}

// EstimatePosition maps a pixel coordinate to the nearest grid position.
// Row is clamped to >= 0 and Col to [0, cols-1]; it never fails.
func EstimatePosition(x, y float64, m BoardMetrics, parity, cols int) GridPosition {
	row := 0
	if m.SpacingY > 0 {
		row = int(math.Round((y - m.PaddingTop - m.Radius()) / m.SpacingY))
	}
	if row < 0 {
		row = 0
	}

	shift := 0.0
	if IsShifted(row, parity) {
		shift = m.Radius()
	}

	col := 0
	if m.SpacingX > 0 {
		col = int(math.Round((x - m.PaddingLeft - m.Radius() - shift) / m.SpacingX))
	}
	if col < 0 {
		col = 0
	}
	if cols > 0 && col > cols-1 {
		col = cols - 1
	}

	return GridPosition{Row: row, Col: col}
}
