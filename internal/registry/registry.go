// Package registry keeps the board variants the frontends can start.
// Variants register themselves in init() so the CLI, the menu and the
// network servers can enumerate them without importing each other.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ErrUnknownVariant is returned by Create and Lookup for unregistered IDs.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Game is a tick-driven 2048 board used by the terminal frontends.
// Implementations hold pure logic; the platform maps keys to actions,
// paces ticks and paints the screen.
type Game interface {
	// ID returns the variant identifier (e.g. "2048", "2048_5x5").
	// Used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts a fresh board.
	Reset(cfg core.RuntimeConfig)

	// Step consumes one frame of input and reports the resulting state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the board into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Size  int    `json:"size"`
}

// Factory creates a new instance of a variant.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a variant. Panics on duplicate IDs or a missing factory.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for %q", info.ID))
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", info.ID))
	}

	if info.Title == "" {
		info.Title = f().Title()
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns all registered variants ordered by board size, then ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Size != result[j].Size {
			return result[i].Size < result[j].Size
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a variant.
func Lookup(id string) (GameInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return GameInfo{}, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return e.info, nil
}

// Create instantiates a variant by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}

	return e.factory(), nil
}

// Exists reports whether a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// ForSize returns the ID of the first variant with the given board size.
func ForSize(size int) (string, bool) {
	for _, info := range List() {
		if info.Size == size {
			return info.ID, true
		}
	}
	return "", false
}
