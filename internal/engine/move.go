package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all four directions in declaration order.
var Directions = []Direction{Up, Down, Left, Right}

// ErrInvalidDirection is returned for a direction outside the four moves.
var ErrInvalidDirection = errors.New("engine: invalid direction")

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four moves.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection converts "up", "down", "left" or "right" (any case).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// axis selects whether lines are rows or columns.
type axis int

const (
	axisRows axis = iota
	axisCols
)

// transform describes how a direction maps onto the line routine.
type transform struct {
	axis    axis
	reverse bool
}

var transforms = map[Direction]transform{
	Left:  {axis: axisRows},
	Right: {axis: axisRows, reverse: true},
	Up:    {axis: axisCols},
	Down:  {axis: axisCols, reverse: true},
}

// MoveOutcome is the result of applying a move to a grid.
type MoveOutcome struct {
	Grid       Grid
	ScoreDelta int
	Changed    bool
}

// ApplyMove slides every line of the grid toward dir and merges.
// The input grid is left untouched. An unknown direction yields an
// unchanged copy with Changed=false.
func ApplyMove(g Grid, dir Direction) MoveOutcome {
	t, ok := transforms[dir]
	if !ok {
		return MoveOutcome{Grid: g.Clone()}
	}

	n := g.Size()
	out := NewGrid(n)
	total := 0
	changed := false

	for i := range n {
		line := extractLine(g, t.axis, i)
		work := line
		if t.reverse {
			work = reverseLine(line)
		}

		merged, score := CompactAndMerge(work)
		if t.reverse {
			merged = reverseLine(merged)
		}

		insertLine(out, t.axis, i, merged)
		total += score
		if !merged.equal(line) {
			changed = true
		}
	}

	return MoveOutcome{Grid: out, ScoreDelta: total, Changed: changed}
}

// extractLine copies row i or column i.
func extractLine(g Grid, a axis, i int) Line {
	n := g.Size()
	line := make(Line, n)
	for j := range n {
		if a == axisRows {
			line[j] = g[i][j]
		} else {
			line[j] = g[j][i]
		}
	}
	return line
}

// insertLine writes line back as row i or column i.
func insertLine(g Grid, a axis, i int, line Line) {
	for j, v := range line {
		if a == axisRows {
			g[i][j] = v
		} else {
			g[j][i] = v
		}
	}
}
