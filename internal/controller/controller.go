// Package controller sequences 2048 turns over one grid and its score.
//
// A Controller owns its grid exclusively. Each turn validates the direction,
// asks the engine for the candidate grid and, when the grid changed, commits
// it, adds the score delta, spawns a tile and finally checks for game over on
// the post-spawn grid.
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

var (
	// ErrInvalidSize is returned by NewGame for sizes below engine.MinSize.
	ErrInvalidSize = errors.New("controller: invalid board size")

	// ErrNoGame is returned by TakeTurn before NewGame was called.
	ErrNoGame = errors.New("controller: no game in progress")

	// ErrInvalidDirection is returned by TakeTurn for an unknown direction.
	ErrInvalidDirection = engine.ErrInvalidDirection
)

// State is the controller's game state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateGameOver
)

// String returns the state name used in snapshots and JSON views.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "idle"
	}
}

// TurnResult reports what a call to TakeTurn did.
type TurnResult struct {
	Moved      bool
	GameOver   bool
	Score      int
	ScoreDelta int
	Grid       [][]int
}

// Controller holds one game: a grid, a cumulative score and a state.
type Controller struct {
	src        engine.RandomSource
	spawn4Prob float64

	grid  engine.Grid
	score int
	moves int
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithSource injects the random source used for tile spawns.
func WithSource(src engine.RandomSource) Option {
	return func(c *Controller) {
		c.src = src
	}
}

// WithSeed uses a deterministic source seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *Controller) {
		c.src = engine.NewSeededSource(seed)
	}
}

// WithSpawn4Prob overrides the probability that a spawned tile is a 4.
func WithSpawn4Prob(p float64) Option {
	return func(c *Controller) {
		c.spawn4Prob = p
	}
}

// New creates a controller with no game in progress.
func New(opts ...Option) *Controller {
	c := &Controller{
		spawn4Prob: engine.DefaultSpawn4Prob,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.src == nil {
		c.src = engine.NewSeededSource(time.Now().UnixNano())
	}
	return c
}

// NewGame resets to an empty size×size board with two spawned tiles.
func (c *Controller) NewGame(size int) error {
	if size < engine.MinSize {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	c.grid = engine.NewGrid(size)
	c.score = 0
	c.moves = 0
	c.state = StatePlaying

	c.spawn()
	c.spawn()
	return nil
}

// TakeTurn plays one move. A move that changes nothing is rejected without
// touching score or grid; a finished game ignores input until NewGame.
func (c *Controller) TakeTurn(dir engine.Direction) (TurnResult, error) {
	if c.state == StateIdle {
		return TurnResult{}, ErrNoGame
	}
	if !dir.Valid() {
		return c.result(false, 0), fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	if c.state == StateGameOver {
		return c.result(false, 0), nil
	}

	out := engine.ApplyMove(c.grid, dir)
	if !out.Changed {
		return c.result(false, 0), nil
	}

	c.grid = out.Grid
	c.score += out.ScoreDelta
	c.moves++

	c.spawn()

	if engine.IsTerminal(c.grid) {
		c.state = StateGameOver
	}

	return c.result(true, out.ScoreDelta), nil
}

// Restore loads an existing board and score, e.g. from a replay or test.
// The state is recomputed from the board.
func (c *Controller) Restore(rows [][]int, score int) error {
	g, err := engine.FromRows(rows)
	if err != nil {
		return err
	}
	if score < 0 {
		return fmt.Errorf("controller: negative score %d", score)
	}

	c.grid = g
	c.score = score
	c.moves = 0
	c.state = StatePlaying
	if engine.IsTerminal(g) {
		c.state = StateGameOver
	}
	return nil
}

// spawn adds one random tile; a full board is left as is.
func (c *Controller) spawn() {
	c.grid, _ = engine.SpawnTile(c.grid, c.src, c.spawn4Prob)
}

func (c *Controller) result(moved bool, delta int) TurnResult {
	return TurnResult{
		Moved:      moved,
		GameOver:   c.state == StateGameOver,
		Score:      c.score,
		ScoreDelta: delta,
		Grid:       c.Grid(),
	}
}

// Grid returns a copy of the board as rows of cell values.
func (c *Controller) Grid() [][]int {
	if c.grid == nil {
		return nil
	}
	return c.grid.Rows()
}

// Score returns the cumulative score.
func (c *Controller) Score() int {
	return c.score
}

// State returns the current game state.
func (c *Controller) State() State {
	return c.state
}

// GameOver reports whether the game has ended.
func (c *Controller) GameOver() bool {
	return c.state == StateGameOver
}

// Size returns the board dimension, or 0 before the first game.
func (c *Controller) Size() int {
	return c.grid.Size()
}

// Moves returns the number of accepted turns in the current game.
func (c *Controller) Moves() int {
	return c.moves
}

// MaxTile returns the highest tile on the board.
func (c *Controller) MaxTile() int {
	return engine.MaxTile(c.grid)
}
