package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/highscore"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// boardGame is the part of *t2048.Game the shell uses beyond registry.Game.
type boardGame interface {
	SetBest(best int)
	Resize(w, h int)
	Snapshot() t2048.Snapshot
}

// Model is the Bubble Tea model for one board.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	best       *highscore.Tracker
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger

	quitting   bool
	backToMenu bool
	exitOnBack bool // standalone program: back quits instead of returning to a menu
	scoreSaved bool // score of the current board already stored
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil store plays without persistence; a nil logger discards logs.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var bestStore highscore.BestStore
	if store != nil {
		bestStore = store
	}
	tracker, err := highscore.NewTracker(bestStore, game.ID())
	if err != nil {
		logger.Warn("could not load best score", "game", game.ID(), "error", err)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		best:       tracker,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		logger:     logger,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.syncBest()
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		// Esc pauses a running board; from a pause or game over it leaves.
		if !m.gameState.GameOver && !m.gameState.Paused {
			m.inputFrame.Set(core.ActionPause)
			return m, nil
		}
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionNone, core.ActionConfirm:
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize keeps the board and only adapts the layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if bg, ok := m.game.(boardGame); ok {
		bg.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.recordScore()
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.syncBest()
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Moved {
		m.observeBest()
	}
	if m.gameState.GameOver {
		m.recordScore()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// observeBest raises the best score as soon as the current score beats it.
func (m *Model) observeBest() {
	if m.best == nil {
		return
	}
	if _, err := m.best.Observe(m.gameState.Score); err != nil {
		m.logger.Warn("could not save best score", "game", m.game.ID(), "error", err)
	}
	m.syncBest()
}

func (m *Model) syncBest() {
	if m.best == nil {
		return
	}
	if bg, ok := m.game.(boardGame); ok {
		bg.SetBest(m.best.Best())
	}
}

// recordScore stores the current board once, if any move was made.
func (m *Model) recordScore() {
	if m.scoreSaved {
		return
	}

	snap := m.snapshot()
	if snap.Moves == 0 {
		return
	}
	m.scoreSaved = true

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), snap.Score, snap.MaxTile, snap.Moves); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

func (m *Model) snapshot() t2048.Snapshot {
	if bg, ok := m.game.(boardGame); ok {
		return bg.Snapshot()
	}
	return t2048.Snapshot{Variant: m.game.ID(), Score: m.game.State().Score}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state seen on the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// NewGameForSize creates the registered variant for size, or a custom board.
func NewGameForSize(size int) registry.Game {
	if id, ok := registry.ForSize(size); ok {
		if game, err := registry.Create(id); err == nil {
			return game
		}
	}
	return t2048.NewSized(size)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
