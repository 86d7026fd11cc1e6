// Package engine implements the 2048 grid transitions: line compaction and
// merging, directional moves, terminal-state detection and tile spawning.
// Every function except SpawnRandomTile is pure and never mutates its input.
package engine

import (
	"errors"
	"fmt"
)

// DefaultSize is the classic board dimension.
const DefaultSize = 4

// MinSize is the smallest supported board dimension.
const MinSize = 2

// ErrInvalidGrid is returned when a grid is not square, too small, or holds
// a value that is neither 0 nor a positive power of two.
var ErrInvalidGrid = errors.New("engine: invalid grid")

// Grid is an N×N board in row-major order. 0 marks an empty cell.
type Grid [][]int

// Cell addresses one grid position.
type Cell struct {
	Row, Col int
}

// NewGrid returns an empty size×size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for r := range g {
		g[r] = make([]int, size)
	}
	return g
}

// FromRows validates rows and returns them as an independent Grid.
func FromRows(rows [][]int) (Grid, error) {
	n := len(rows)
	if n < MinSize {
		return nil, fmt.Errorf("%w: size %d is below %d", ErrInvalidGrid, n, MinSize)
	}
	g := NewGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), n)
		}
		for c, v := range row {
			if !isTileValue(v) {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidGrid, r, c, v)
			}
			g[r][c] = v
		}
	}
	return g, nil
}

// isTileValue reports whether v is 0 or a positive power of two.
func isTileValue(v int) bool {
	return v == 0 || (v > 0 && v&(v-1) == 0)
}

// Size returns the board dimension.
func (g Grid) Size() int {
	return len(g)
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// Equal compares two grids cell by cell.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// Rows returns the grid as plain nested slices, detached from g.
func (g Grid) Rows() [][]int {
	return [][]int(g.Clone())
}

// EmptyCells returns every empty position in row-major order.
func EmptyCells(g Grid) []Cell {
	var cells []Cell
	for r, row := range g {
		for c, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// CountTiles returns the number of non-empty cells.
func CountTiles(g Grid) int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the highest tile value on the board.
func MaxTile(g Grid) int {
	maxVal := 0
	for _, row := range g {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// Sum returns the total of all cell values.
func Sum(g Grid) int {
	total := 0
	for _, row := range g {
		for _, v := range row {
			total += v
		}
	}
	return total
}
