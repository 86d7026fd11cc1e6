// Package session hosts many concurrent 2048 games for the network
// frontends. Each game is owned by the manager and addressed by a UUID;
// turns on one game are serialised while different games run in parallel.
package session

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/controller"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/highscore"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("session: game not found")

// ErrTooManyGames is returned by Create when the manager is full.
var ErrTooManyGames = errors.New("session: too many games")

// MaxSize bounds the board dimension of hosted games.
const MaxSize = 16

// Store persists finished games and best scores. *storage.Store implements it.
type Store interface {
	highscore.BestStore
	SaveScore(gameID string, score, maxTile, moves int) (int64, error)
}

// Event types delivered to listeners.
const (
	EventCreated = "created"
	EventUpdate  = "state_update"
	EventDeleted = "deleted"
)

// Event describes a change to a hosted game.
type Event struct {
	GameID string
	Type   string
	View   View
}

// Listener receives events after the game lock is released.
type Listener func(Event)

// View is the JSON-friendly state of a game.
type View struct {
	ID       string  `json:"id"`
	Variant  string  `json:"variant"`
	Size     int     `json:"size"`
	Score    int     `json:"score"`
	Best     int     `json:"best,omitempty"`
	Moves    int     `json:"moves"`
	MaxTile  int     `json:"max_tile"`
	State    string  `json:"state"`
	Grid     [][]int `json:"grid"`
	Moved    *bool   `json:"moved,omitempty"`
	Delta    int     `json:"score_delta,omitempty"`
	GameOver bool    `json:"game_over"`
}

type game struct {
	mu      sync.Mutex
	id      string
	variant string
	size    int
	ctrl    *controller.Controller
	saved   bool
	created time.Time
}

// Manager owns the hosted games.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*game

	logger      *log.Logger
	store       Store
	spawn4Prob  float64
	maxGames    int
	defaultSize int

	bestMu   sync.Mutex
	trackers map[string]*highscore.Tracker

	lmu       sync.RWMutex
	listeners []Listener
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for game lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithStore persists finished games and best scores.
func WithStore(s Store) Option {
	return func(m *Manager) {
		m.store = s
	}
}

// WithSpawn4Prob sets the chance of spawning a 4 in new games.
func WithSpawn4Prob(p float64) Option {
	return func(m *Manager) {
		m.spawn4Prob = p
	}
}

// WithDefaultSize sets the board size used when Create is asked for size 0.
func WithDefaultSize(n int) Option {
	return func(m *Manager) {
		m.defaultSize = n
	}
}

// WithMaxGames caps the number of hosted games; 0 means unlimited.
func WithMaxGames(n int) Option {
	return func(m *Manager) {
		m.maxGames = n
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		games:       make(map[string]*game),
		trackers:    make(map[string]*highscore.Tracker),
		spawn4Prob:  engine.DefaultSpawn4Prob,
		defaultSize: engine.DefaultSize,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers a listener for game events.
func (m *Manager) Subscribe(l Listener) {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Manager) publish(ev Event) {
	m.lmu.RLock()
	listeners := m.listeners
	m.lmu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
}

// Create starts a new game whose spawns are fully determined by seed.
// Size 0 uses the manager's default size.
func (m *Manager) Create(size int, seed int64) (View, error) {
	if size == 0 {
		size = m.defaultSize
	}
	if size > MaxSize {
		return View{}, fmt.Errorf("%w: %d exceeds %d", controller.ErrInvalidSize, size, MaxSize)
	}

	ctrl := controller.New(controller.WithSeed(seed), controller.WithSpawn4Prob(m.spawn4Prob))
	if err := ctrl.NewGame(size); err != nil {
		return View{}, err
	}

	g := &game{
		id:      uuid.NewString(),
		variant: t2048.VariantForSize(size).ID,
		size:    size,
		ctrl:    ctrl,
		created: time.Now(),
	}

	m.mu.Lock()
	if m.maxGames > 0 && len(m.games) >= m.maxGames {
		m.mu.Unlock()
		return View{}, fmt.Errorf("%w (limit %d)", ErrTooManyGames, m.maxGames)
	}
	m.games[g.id] = g
	m.mu.Unlock()

	m.logger.Info("game created", "game", g.id, "size", size, "seed", seed)

	g.mu.Lock()
	v := m.view(g)
	g.mu.Unlock()

	m.publish(Event{GameID: g.id, Type: EventCreated, View: v})
	return v, nil
}

// CreateRandom starts a new game with a time-based seed.
func (m *Manager) CreateRandom(size int) (View, error) {
	return m.Create(size, time.Now().UnixNano())
}

func (m *Manager) lookup(id string) (*game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return g, nil
}

// Get returns the current view of a game.
func (m *Manager) Get(id string) (View, error) {
	g, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return m.view(g), nil
}

// List returns all hosted games, oldest first.
func (m *Manager) List() []View {
	m.mu.RLock()
	games := make([]*game, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	m.mu.RUnlock()

	sort.Slice(games, func(i, j int) bool {
		if games[i].created.Equal(games[j].created) {
			return games[i].id < games[j].id
		}
		return games[i].created.Before(games[j].created)
	})

	views := make([]View, 0, len(games))
	for _, g := range games {
		g.mu.Lock()
		views = append(views, m.view(g))
		g.mu.Unlock()
	}
	return views
}

// TakeTurn plays one move on a game.
func (m *Manager) TakeTurn(id string, dir engine.Direction) (View, error) {
	g, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}

	g.mu.Lock()
	res, err := g.ctrl.TakeTurn(dir)
	if err != nil {
		g.mu.Unlock()
		return View{}, err
	}

	m.observeBest(g)
	if res.GameOver && !g.saved {
		m.saveFinished(g)
	}

	v := m.view(g)
	v.Moved = &res.Moved
	v.Delta = res.ScoreDelta
	g.mu.Unlock()

	m.logger.Debug("turn", "game", id, "direction", dir, "moved", res.Moved, "score", res.Score)
	if res.Moved {
		m.publish(Event{GameID: id, Type: EventUpdate, View: v})
	}
	return v, nil
}

// Reset starts a new board of the same size for an existing game.
func (m *Manager) Reset(id string) (View, error) {
	g, err := m.lookup(id)
	if err != nil {
		return View{}, err
	}

	g.mu.Lock()
	if !g.saved && g.ctrl.Moves() > 0 {
		m.saveFinished(g)
	}
	if err := g.ctrl.NewGame(g.size); err != nil {
		g.mu.Unlock()
		return View{}, err
	}
	g.saved = false
	v := m.view(g)
	g.mu.Unlock()

	m.logger.Info("game reset", "game", id)
	m.publish(Event{GameID: id, Type: EventUpdate, View: v})
	return v, nil
}

// Delete removes a game.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	g, ok := m.games[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.games, id)
	m.mu.Unlock()

	g.mu.Lock()
	v := m.view(g)
	g.mu.Unlock()

	m.logger.Info("game deleted", "game", id)
	m.publish(Event{GameID: id, Type: EventDeleted, View: v})
	return nil
}

// Len returns the number of hosted games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// view builds a View; the caller holds g.mu.
func (m *Manager) view(g *game) View {
	return View{
		ID:       g.id,
		Variant:  g.variant,
		Size:     g.size,
		Score:    g.ctrl.Score(),
		Best:     max(m.bestFor(g.variant), g.ctrl.Score()),
		Moves:    g.ctrl.Moves(),
		MaxTile:  g.ctrl.MaxTile(),
		State:    g.ctrl.State().String(),
		Grid:     g.ctrl.Grid(),
		GameOver: g.ctrl.GameOver(),
	}
}

func (m *Manager) tracker(variant string) *highscore.Tracker {
	m.bestMu.Lock()
	defer m.bestMu.Unlock()

	if t, ok := m.trackers[variant]; ok {
		return t
	}

	var store highscore.BestStore
	if m.store != nil {
		store = m.store
	}
	t, err := highscore.NewTracker(store, variant)
	if err != nil {
		m.logger.Warn("cannot load best score", "variant", variant, "error", err)
	}
	m.trackers[variant] = t
	return t
}

func (m *Manager) bestFor(variant string) int {
	return m.tracker(variant).Best()
}

func (m *Manager) observeBest(g *game) {
	improved, err := m.tracker(g.variant).Observe(g.ctrl.Score())
	if err != nil {
		m.logger.Warn("cannot save best score", "variant", g.variant, "error", err)
		return
	}
	if improved {
		m.logger.Debug("new best score", "variant", g.variant, "score", g.ctrl.Score())
	}
}

// saveFinished records the current game; the caller holds g.mu.
func (m *Manager) saveFinished(g *game) {
	g.saved = true
	if m.store == nil || g.ctrl.Moves() == 0 {
		return
	}
	if _, err := m.store.SaveScore(g.variant, g.ctrl.Score(), g.ctrl.MaxTile(), g.ctrl.Moves()); err != nil {
		m.logger.Warn("cannot save score", "game", g.id, "error", err)
		return
	}
	m.logger.Info("game finished", "game", g.id, "score", g.ctrl.Score(), "max_tile", g.ctrl.MaxTile())
}
