package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func TestApplyMoveLeft(t *testing.T) {
	g := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}
	before := g.Clone()

	expected := Grid{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	out := ApplyMove(g, Left)

	if !out.Grid.Equal(expected) {
		t.Errorf("ApplyMove(Left): got\n%v\nwant\n%v", out.Grid, expected)
	}
	if !out.Changed {
		t.Error("ApplyMove(Left) should indicate board changed")
	}
	if out.ScoreDelta != 4+8+8 {
		t.Errorf("ApplyMove(Left) score = %d, want 20", out.ScoreDelta)
	}
	if !g.Equal(before) {
		t.Error("ApplyMove mutated the input grid")
	}
}

func TestApplyMoveRight(t *testing.T) {
	g := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	expected := Grid{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	}

	out := ApplyMove(g, Right)
	if !out.Grid.Equal(expected) {
		t.Errorf("ApplyMove(Right): got\n%v\nwant\n%v", out.Grid, expected)
	}
	if !out.Changed {
		t.Error("ApplyMove(Right) should indicate board changed")
	}
}

func TestApplyMoveUp(t *testing.T) {
	g := Grid{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	}

	expected := Grid{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	out := ApplyMove(g, Up)
	if !out.Grid.Equal(expected) {
		t.Errorf("ApplyMove(Up): got\n%v\nwant\n%v", out.Grid, expected)
	}
	if out.ScoreDelta != 4+8+4+4 {
		t.Errorf("ApplyMove(Up) score = %d, want 20", out.ScoreDelta)
	}
}

func TestApplyMoveDown(t *testing.T) {
	g := Grid{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	}

	expected := Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	out := ApplyMove(g, Down)
	if !out.Grid.Equal(expected) {
		t.Errorf("ApplyMove(Down): got\n%v\nwant\n%v", out.Grid, expected)
	}
	if !out.Changed {
		t.Error("ApplyMove(Down) should indicate board changed")
	}
}

func TestApplyMoveNoChange(t *testing.T) {
	g := Grid{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	out := ApplyMove(g, Left)
	if out.Changed {
		t.Error("ApplyMove(Left) should not change already left-aligned tiles")
	}
	if out.ScoreDelta != 0 {
		t.Errorf("ApplyMove(Left) score = %d, want 0", out.ScoreDelta)
	}

	out = ApplyMove(g, Up)
	if out.Changed {
		t.Error("ApplyMove(Up) should not change tiles already on the top row")
	}
}

func TestApplyMoveUnknownDirection(t *testing.T) {
	g := Grid{{2, 0}, {0, 2}}
	out := ApplyMove(g, Direction(42))
	if out.Changed || out.ScoreDelta != 0 || !out.Grid.Equal(g) {
		t.Errorf("ApplyMove(unknown) = %+v, want unchanged grid", out)
	}
}

func reflectHorizontal(g Grid) Grid {
	out := NewGrid(g.Size())
	for r, row := range g {
		copy(out[r], reverseLine(row))
	}
	return out
}

func transpose(g Grid) Grid {
	n := g.Size()
	out := NewGrid(n)
	for r := range n {
		for c := range n {
			out[r][c] = g[c][r]
		}
	}
	return out
}

func randomGrid(rng *rand.Rand, n int, values []int) Grid {
	g := NewGrid(n)
	for r := range n {
		for c := range n {
			g[r][c] = values[rng.Intn(len(values))]
		}
	}
	return g
}

func TestApplyMoveDirectionalSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(2048))
	values := []int{0, 0, 2, 2, 4, 8}

	for i := 0; i < 500; i++ {
		n := 2 + rng.Intn(4)
		g := randomGrid(rng, n, values)

		left := ApplyMove(g, Left)
		right := ApplyMove(reflectHorizontal(g), Right)
		if !reflectHorizontal(right.Grid).Equal(left.Grid) || right.ScoreDelta != left.ScoreDelta || right.Changed != left.Changed {
			t.Fatalf("Left/Right asymmetry for\n%v", g)
		}

		up := ApplyMove(g, Up)
		leftT := ApplyMove(transpose(g), Left)
		if !transpose(leftT.Grid).Equal(up.Grid) || leftT.ScoreDelta != up.ScoreDelta || leftT.Changed != up.Changed {
			t.Fatalf("Up/Left transpose mismatch for\n%v", g)
		}

		down := ApplyMove(g, Down)
		rightT := ApplyMove(transpose(g), Right)
		if !transpose(rightT.Grid).Equal(down.Grid) || rightT.ScoreDelta != down.ScoreDelta {
			t.Fatalf("Down/Right transpose mismatch for\n%v", g)
		}

		if Sum(left.Grid) != Sum(g) || Sum(down.Grid) != Sum(g) {
			t.Fatalf("ApplyMove changed grid mass for\n%v", g)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
	}{
		{"up", Up},
		{"DOWN", Down},
		{" Left ", Left},
		{"right", Right},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got.String() != tt.want.String() {
			t.Errorf("String() round trip mismatch for %q", tt.input)
		}
	}

	if _, err := ParseDirection("diagonal"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseDirection(diagonal) error = %v, want ErrInvalidDirection", err)
	}
	if Direction(9).Valid() {
		t.Error("Direction(9) should not be valid")
	}
}
