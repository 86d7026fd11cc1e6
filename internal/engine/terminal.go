package engine

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(g Grid) bool {
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two 4-connected tiles are equal.
func HasPossibleMerge(g Grid) bool {
	n := g.Size()
	for r := range n {
		for c := range n {
			val := g[r][c]
			if c < n-1 && g[r][c+1] == val {
				return true
			}
			if r < n-1 && g[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if some direction would change the grid.
func CanMove(g Grid) bool {
	return HasEmptyCell(g) || HasPossibleMerge(g)
}

// IsTerminal returns true when the grid is full and no neighbours match.
func IsTerminal(g Grid) bool {
	return !CanMove(g)
}
