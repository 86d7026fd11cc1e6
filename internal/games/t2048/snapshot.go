package t2048

// GameStateType is the coarse state reported in snapshots.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Variant string
	Size    int
	Score   int
	Best    int
	Moves   int
	Board   [][]int
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.ctrl.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		Size:    g.variant.Size,
		Score:   g.ctrl.Score(),
		Best:    max(g.best, g.ctrl.Score()),
		Moves:   g.ctrl.Moves(),
		Board:   g.ctrl.Grid(),
		MaxTile: g.ctrl.MaxTile(),
		State:   state,
	}
}
