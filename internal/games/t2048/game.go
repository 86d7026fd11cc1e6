// Package t2048 adapts the 2048 controller to the tick-driven arcade
// interface used by the terminal and SSH frontends.
package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/controller"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Game implements registry.Game for one board variant.
type Game struct {
	variant Variant
	ctrl    *controller.Controller
	tick    uint64

	best      int
	lastDelta int

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game for the given variant. Call Reset before use.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// NewSized creates a game for an arbitrary board size.
func NewSized(size int) *Game {
	return New(VariantForSize(size))
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Size returns the board dimension.
func (g *Game) Size() int {
	return g.variant.Size
}

// Reset starts a new board seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.ctrl = controller.New(
		controller.WithSeed(cfg.Seed),
		controller.WithSpawn4Prob(cfg.Spawn4Prob),
	)
	//nolint:errcheck // variant sizes are never below engine.MinSize
	g.ctrl.NewGame(max(g.variant.Size, engine.MinSize))

	g.tick = 0
	g.lastDelta = 0
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := minScreen(g.variant.Size)
	g.tooSmall = w < minW || h < minH
}

// SetBest sets the best score shown in the HUD.
func (g *Game) SetBest(best int) {
	g.best = best
}

// Step processes one frame: at most one move per tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.ctrl.GameOver() {
		g.paused = !g.paused
	}
	if g.paused || g.ctrl.GameOver() {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	res, err := g.ctrl.TakeTurn(dir)
	if err != nil {
		return core.StepResult{State: g.State()}
	}
	if res.Moved {
		g.lastDelta = res.ScoreDelta
	}

	return core.StepResult{State: g.State(), Moved: res.Moved}
}

// directionFor picks the first movement action present in the frame.
func directionFor(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.Up, true
	case in.Has(core.ActionDown):
		return engine.Down, true
	case in.Has(core.ActionLeft):
		return engine.Left, true
	case in.Has(core.ActionRight):
		return engine.Right, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.ctrl.Score(),
		GameOver: g.ctrl.GameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}
