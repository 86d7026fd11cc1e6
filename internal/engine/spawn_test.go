package engine

import (
	"errors"
	"testing"
)

// scriptedSource replays fixed values.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestSpawnRandomTilePicksEmptyCell(t *testing.T) {
	g := Grid{
		{2, 0, 4, 0},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}

	// Second empty cell in row-major order is (0,3); 0.5 keeps the value at 2.
	src := &scriptedSource{ints: []int{1}, floats: []float64{0.5}}
	out, ok := SpawnRandomTile(g, src)
	if !ok {
		t.Fatal("SpawnRandomTile should succeed with empty cells")
	}
	if out[0][3] != 2 {
		t.Errorf("spawned value at (0,3) = %d, want 2", out[0][3])
	}
	if g[0][3] != 0 {
		t.Error("SpawnRandomTile mutated the input grid")
	}
	if CountTiles(out) != CountTiles(g)+1 {
		t.Errorf("tile count = %d, want %d", CountTiles(out), CountTiles(g)+1)
	}
}

func TestSpawnRandomTileFour(t *testing.T) {
	g := NewGrid(2)
	src := &scriptedSource{ints: []int{0}, floats: []float64{0.05}}
	out, _ := SpawnRandomTile(g, src)
	if out[0][0] != 4 {
		t.Errorf("spawned value = %d, want 4", out[0][0])
	}
}

func TestSpawnRandomTileFullGrid(t *testing.T) {
	g := Grid{{2, 4}, {4, 2}}
	src := &scriptedSource{}

	out, ok := SpawnRandomTile(g, src)
	if ok {
		t.Error("SpawnRandomTile on a full grid should report false")
	}
	if !out.Equal(g) {
		t.Errorf("full grid changed: %v", out)
	}
}

func TestSpawnDistribution(t *testing.T) {
	src := NewSeededSource(12345)
	fours := 0
	const trials = 10000

	for i := 0; i < trials; i++ {
		out, _ := SpawnRandomTile(NewGrid(4), src)
		if MaxTile(out) == 4 {
			fours++
		}
	}

	ratio := float64(fours) / trials
	if ratio < 0.08 || ratio > 0.12 {
		t.Errorf("4-tile ratio = %.3f, want about 0.10", ratio)
	}
}

func TestSpawnTileProbability(t *testing.T) {
	src := &scriptedSource{ints: []int{0, 0}, floats: []float64{0.2, 0.3}}

	out, _ := SpawnTile(NewGrid(2), src, 0.25)
	if out[0][0] != 4 {
		t.Errorf("0.2 < 0.25 should spawn 4, got %d", out[0][0])
	}
	out, _ = SpawnTile(NewGrid(2), src, 0.25)
	if out[0][0] != 2 {
		t.Errorf("0.3 >= 0.25 should spawn 2, got %d", out[0][0])
	}
}

func TestSeededSourceDeterministic(t *testing.T) {
	a, b := NewSeededSource(42), NewSeededSource(42)
	ga, gb := NewGrid(4), NewGrid(4)
	for i := 0; i < 8; i++ {
		ga, _ = SpawnRandomTile(ga, a)
		gb, _ = SpawnRandomTile(gb, b)
	}
	if !ga.Equal(gb) {
		t.Errorf("same seed produced different grids:\n%v\nvs\n%v", ga, gb)
	}
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]int{{2, 0}, {0, 1024}})
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	if g.Size() != 2 || g[1][1] != 1024 {
		t.Errorf("FromRows() = %v", g)
	}

	bad := [][][]int{
		{{2}},
		{{2, 0}, {0}},
		{{3, 0}, {0, 0}},
		{{-2, 0}, {0, 0}},
	}
	for _, rows := range bad {
		if _, err := FromRows(rows); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("FromRows(%v) error = %v, want ErrInvalidGrid", rows, err)
		}
	}
}

func TestGridHelpers(t *testing.T) {
	g := Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	if len(EmptyCells(g)) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(EmptyCells(g)))
	}
	if MaxTile(g) != 2048 {
		t.Errorf("MaxTile = %d, want 2048", MaxTile(g))
	}
	if CountTiles(g) != 8 {
		t.Errorf("CountTiles = %d, want 8", CountTiles(g))
	}

	rows := g.Rows()
	rows[0][0] = 999
	if g[0][0] != 2 {
		t.Error("Rows() should return a detached copy")
	}
}
