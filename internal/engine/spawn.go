package engine

import "math/rand"

// DefaultSpawn4Prob is the chance that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// RandomSource supplies the randomness for tile spawning.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// SpawnRandomTile places a 2 (90%) or 4 (10%) on a uniformly chosen empty
// cell. A full grid is returned unchanged with false.
func SpawnRandomTile(g Grid, src RandomSource) (Grid, bool) {
	return SpawnTile(g, src, DefaultSpawn4Prob)
}

// SpawnTile is SpawnRandomTile with a configurable 4-tile probability.
func SpawnTile(g Grid, src RandomSource, prob4 float64) (Grid, bool) {
	empty := EmptyCells(g)
	if len(empty) == 0 {
		return g.Clone(), false
	}

	cell := empty[src.Intn(len(empty))]

	value := 2
	if src.Float64() < prob4 {
		value = 4
	}

	out := g.Clone()
	out[cell.Row][cell.Col] = value
	return out, true
}
