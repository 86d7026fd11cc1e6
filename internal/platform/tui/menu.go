package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// maxMenuSize bounds the custom board; larger boards do not fit 80x24.
const maxMenuSize = 8

// MenuItem represents a selectable board in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Size   int
	Best   int
	Custom bool
}

// MenuModel is the Bubble Tea model for the board picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	customSize     int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a board
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model listing registered variants plus a
// custom size entry.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+1)

	for _, g := range games {
		items = append(items, MenuItem{
			GameID: g.ID,
			Title:  g.Title,
			Size:   g.Size,
			Best:   bestFor(store, g.ID),
		})
	}

	m := MenuModel{
		items:      items,
		customSize: 7,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
	m.items = append(m.items, m.customItem())

	m.highlight(cfg.BoardSize)
	return m
}

// highlight moves the cursor to the variant of the given size. Sizes with no
// variant go to the custom entry when it can hold them, otherwise the classic
// board is used.
func (m *MenuModel) highlight(size int) {
	if size < engine.MinSize || size > maxMenuSize {
		size = engine.DefaultSize
	}
	for i, item := range m.items {
		if item.Size == size && !item.Custom {
			m.cursor = i
			return
		}
	}
	last := len(m.items) - 1
	m.customSize = size
	m.items[last] = m.customItem()
	m.cursor = last
}

func bestFor(store *storage.Store, gameID string) int {
	if store == nil {
		return 0
	}
	best, err := store.BestScore(gameID)
	if err != nil {
		return 0
	}
	return best
}

func (m MenuModel) customItem() MenuItem {
	v := t2048.VariantForSize(m.customSize)
	return MenuItem{
		GameID: v.ID,
		Title:  "Custom",
		Size:   m.customSize,
		Best:   bestFor(m.store, v.ID),
		Custom: true,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjustCustom(-1)

	case MenuActionRight:
		m.adjustCustom(1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// adjustCustom changes the custom board size when it is highlighted.
func (m *MenuModel) adjustCustom(delta int) {
	last := len(m.items) - 1
	if last < 0 || m.cursor != last {
		return
	}
	size := m.customSize + delta
	if size < engine.MinSize || size > maxMenuSize {
		return
	}
	m.customSize = size
	m.items[last] = m.customItem()
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  2 0 4 8  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a board", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		title := item.Title
		if item.Custom {
			title = fmt.Sprintf("Custom < %dx%d >", item.Size, item.Size)
		}

		line := fmt.Sprintf("%s%-18s best %d", cursor, title, item.Best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Size  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Size            int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
		result.Size = m.Selected().Size
	}

	return result, nil
}
