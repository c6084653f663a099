package core

import (
	"sort"
)

// Board is the sparse set of occupied grid cells for one level.
// Column count, capacity (rows) and the ceiling row are fixed at creation;
// row parity changes only when rows are inserted at the top.
type Board struct {
	cols       int
	rows       int
	ceilingRow int
	parity     int
	cells      map[GridPosition]Cell
	nextID     int
}

// NewBoard creates an empty board with the given columns, row capacity and
// row parity (0 or 1).
func NewBoard(cols, rows, parity int) *Board {
	return &Board{
		cols:   cols,
		rows:   rows,
		parity: ((parity % 2) + 2) % 2,
		cells:  make(map[GridPosition]Cell),
		nextID: 1,
	}
}

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// Rows returns the row capacity.
func (b *Board) Rows() int { return b.rows }

// CeilingRow returns the row index anchored to the ceiling.
func (b *Board) CeilingRow() int { return b.ceilingRow }

// Parity returns the current row parity offset.
func (b *Board) Parity() int { return b.parity }

// DangerRow returns the last row before the cannon line. A cell here ends
// Classic and TimeAttack runs.
func (b *Board) DangerRow() int { return b.rows - 1 }

// InBounds returns true if pos lies inside the board's capacity.
func (b *Board) InBounds(pos GridPosition) bool {
	return pos.Row >= 0 && pos.Row < b.rows && pos.Col >= 0 && pos.Col < b.cols
}

// Get returns the cell at pos.
func (b *Board) Get(pos GridPosition) (Cell, bool) {
	c, ok := b.cells[pos]
	return c, ok
}

// Has reports whether pos is occupied.
func (b *Board) Has(pos GridPosition) bool {
	_, ok := b.cells[pos]
	return ok
}

// Set places a new cell of the given color at pos and returns it.
// Fails with ErrInvalidState if pos is occupied or outside the board.
func (b *Board) Set(pos GridPosition, color Color) (Cell, error) {
	if !b.InBounds(pos) {
		return Cell{}, invalidState("position %s outside %dx%d board", pos, b.rows, b.cols)
	}
	if _, ok := b.cells[pos]; ok {
		return Cell{}, invalidState("position %s already occupied", pos)
	}
	c := Cell{ID: b.nextID, Color: color, State: CellStationary}
	b.nextID++
	b.cells[pos] = c
	return c, nil
}

// Remove deletes the cell at pos and returns it.
func (b *Board) Remove(pos GridPosition) (Cell, bool) {
	c, ok := b.cells[pos]
	if ok {
		delete(b.cells, pos)
	}
	return c, ok
}

// SetState updates the lifecycle state of the cell at pos.
func (b *Board) SetState(pos GridPosition, state CellState) bool {
	c, ok := b.cells[pos]
	if !ok {
		return false
	}
	c.State = state
	b.cells[pos] = c
	return true
}

// Len returns the number of occupied cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// IsEmpty returns true when no cells remain.
func (b *Board) IsEmpty() bool {
	return len(b.cells) == 0
}

// Positions returns all occupied positions ordered by row then column.
func (b *Board) Positions() []GridPosition {
	out := make([]GridPosition, 0, len(b.cells))
	for p := range b.cells {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make(map[GridPosition]Cell, len(b.cells))
	for p, c := range b.cells {
		cells[p] = c
	}
	return &Board{
		cols:       b.cols,
		rows:       b.rows,
		ceilingRow: b.ceilingRow,
		parity:     b.parity,
		cells:      cells,
		nextID:     b.nextID,
	}
}

// Fill clears the board and populates rows [0, rows) of columns [0, cols)
// with random colors drawn from pool. Special colors in the pool are ignored.
func (b *Board) Fill(rows, cols int, pool []Color, rng Source) error {
	normal := normalPool(pool)
	if len(normal) == 0 {
		return invalidState("fill: color pool has no normal colors")
	}
	if rows > b.rows || cols > b.cols || rows < 0 || cols < 0 {
		return invalidState("fill: %dx%d exceeds %dx%d board", rows, cols, b.rows, b.cols)
	}

	b.cells = make(map[GridPosition]Cell, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			//nolint:errcheck // In bounds and empty by construction
			b.Set(P(r, c), normal[rng.Intn(len(normal))])
		}
	}
	return nil
}

// InsertRows shifts every cell down by n rows and fills the n new top rows
// with random colors from pool. Parity flips when n is odd so existing
// cells keep their neighbors. Cells pushed past capacity are discarded and
// counted in the returned overflow.
func (b *Board) InsertRows(n int, pool []Color, rng Source) (overflow int, err error) {
	if n <= 0 {
		return 0, nil
	}
	normal := normalPool(pool)
	if len(normal) == 0 {
		return 0, invalidState("insert rows: color pool has no normal colors")
	}

	shifted := make(map[GridPosition]Cell, len(b.cells)+n*b.cols)
	for p, c := range b.cells {
		np := P(p.Row+n, p.Col)
		if np.Row >= b.rows {
			overflow++
			continue
		}
		shifted[np] = c
	}
	b.cells = shifted
	b.parity = (b.parity + n) % 2

	for r := 0; r < n && r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			//nolint:errcheck // Top rows were vacated above
			b.Set(P(r, c), normal[rng.Intn(len(normal))])
		}
	}
	return overflow, nil
}

// ColorsPresent returns the distinct normal colors on the board, in color
// order.
func (b *Board) ColorsPresent() []Color {
	seen := make(map[Color]bool)
	for _, c := range b.cells {
		if !c.Color.IsSpecial() {
			seen[c.Color] = true
		}
	}
	out := make([]Color, 0, len(seen))
	for _, c := range NormalColors {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// CountByColor returns how many cells of each color are on the board.
func (b *Board) CountByColor() map[Color]int {
	counts := make(map[Color]int)
	for _, c := range b.cells {
		counts[c.Color]++
	}
	return counts
}

// Lowest returns the deepest occupied row, or -1 on an empty board.
func (b *Board) Lowest() int {
	lowest := -1
	for p := range b.cells {
		if p.Row > lowest {
			lowest = p.Row
		}
	}
	return lowest
}

func normalPool(pool []Color) []Color {
	out := make([]Color, 0, len(pool))
	for _, c := range pool {
		if !c.IsSpecial() {
			out = append(out, c)
		}
	}
	return out
}

func sortPositions(ps []GridPosition) {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].Less(ps[j])
	})
}
