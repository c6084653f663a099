package core

// MinMatch is the smallest same-color cluster that pops.
const MinMatch = 3

// AnchorFunc reports whether a cell position is held up by the ceiling.
type AnchorFunc func(pos GridPosition) bool

// CeilingAnchor returns the default anchor predicate: cells on the board's
// ceiling row.
func CeilingAnchor(b *Board) AnchorFunc {
	ceiling := b.CeilingRow()
	return func(pos GridPosition) bool {
		return pos.Row == ceiling
	}
}

// FindConnectedSameColor returns the cluster of cells sharing start's color
// that are connected to start, if it has at least MinMatch members.
// Special cells and empty positions yield an empty result.
func FindConnectedSameColor(start GridPosition, b *Board) []GridPosition {
	cell, ok := b.Get(start)
	if !ok || cell.Color.IsSpecial() {
		return nil
	}

	cluster := floodColor(start, cell.Color, b, nil)
	if len(cluster) < MinMatch {
		return nil
	}
	sortPositions(cluster)
	return cluster
}

// floodColor collects the connected component of color reachable from start.
// Positions in extra are treated as occupied by color even if the board holds
// something else there.
func floodColor(start GridPosition, color Color, b *Board, extra map[GridPosition]bool) []GridPosition {
	visited := map[GridPosition]bool{start: true}
	queue := []GridPosition{start}
	var out []GridPosition

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)

		for _, n := range Neighbors(cur, b.Parity()) {
			if visited[n] {
				continue
			}
			if !extra[n] {
				c, ok := b.Get(n)
				if !ok || c.Color != color {
					continue
				}
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return out
}

// FindDisconnectedFromCeiling returns every occupied cell not reachable from
// an anchored cell through occupied neighbors. A nil anchor uses
// CeilingAnchor. Anchored cells are never returned.
func FindDisconnectedFromCeiling(b *Board, anchor AnchorFunc) []GridPosition {
	if anchor == nil {
		anchor = CeilingAnchor(b)
	}

	visited := make(map[GridPosition]bool, b.Len())
	var queue []GridPosition
	for _, p := range b.Positions() {
		if anchor(p) {
			visited[p] = true
			queue = append(queue, p)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range Neighbors(cur, b.Parity()) {
			if visited[n] || !b.Has(n) {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	var floating []GridPosition
	for _, p := range b.Positions() {
		if !visited[p] {
			floating = append(floating, p)
		}
	}
	return floating
}

// ExplosionArea returns every occupied position within radius steps of
// center, center included if occupied.
func ExplosionArea(center GridPosition, b *Board, radius int) []GridPosition {
	dist := map[GridPosition]int{center: 0}
	queue := []GridPosition{center}
	var out []GridPosition

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if b.Has(cur) {
			out = append(out, cur)
		}
		if dist[cur] == radius {
			continue
		}
		for _, n := range Neighbors(cur, b.Parity()) {
			if _, seen := dist[n]; seen || !b.InBounds(n) {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	sortPositions(out)
	return out
}

// ResolveRainbow treats the rainbow cell at pos as each distinct normal color
// found among its neighbors and returns the union of every resulting cluster
// of at least MinMatch cells, the rainbow included.
func ResolveRainbow(pos GridPosition, b *Board) []GridPosition {
	seenColor := make(map[Color]bool)
	matched := make(map[GridPosition]bool)
	wild := map[GridPosition]bool{pos: true}

	for _, n := range Neighbors(pos, b.Parity()) {
		c, ok := b.Get(n)
		if !ok || c.Color.IsSpecial() || seenColor[c.Color] {
			continue
		}
		seenColor[c.Color] = true

		cluster := floodColor(pos, c.Color, b, wild)
		if len(cluster) < MinMatch {
			continue
		}
		for _, p := range cluster {
			matched[p] = true
		}
	}

	out := make([]GridPosition, 0, len(matched))
	for p := range matched {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}
