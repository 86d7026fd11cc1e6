package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return model, cmd
}

func TestMenuListsVariantsAndCustom(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	if len(m.items) < 5 {
		t.Fatalf("menu has %d items, want registered variants plus custom", len(m.items))
	}
	last := m.items[len(m.items)-1]
	if !last.Custom {
		t.Error("last item should be the custom board")
	}
	if m.items[m.cursor].Size != engine.DefaultSize {
		t.Errorf("cursor starts on size %d, want %d", m.items[m.cursor].Size, engine.DefaultSize)
	}

	view := m.View()
	for _, want := range []string{"2 0 4 8", "2048 (5x5)", "Custom < 7x7 >"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestMenuHighlightsConfiguredSize(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		wantSize   int
		wantCustom bool
	}{
		{"registered variant", 5, 5, false},
		{"custom size", 7, 7, true},
		{"too large falls back", 20, 4, false},
		{"unset falls back", 0, 4, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.BoardSize = tc.size
			m := NewMenuModel(nil, cfg)

			item := m.items[m.cursor]
			if item.Size != tc.wantSize || item.Custom != tc.wantCustom {
				t.Errorf("cursor on %+v, want size %d custom %v", item, tc.wantSize, tc.wantCustom)
			}
		})
	}
}

func TestMenuCustomSizeBounds(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	// Left/right do nothing away from the custom entry.
	m, _ = menuKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.customSize != 7 {
		t.Fatalf("customSize changed off the custom entry: %d", m.customSize)
	}

	for range len(m.items) {
		m, _ = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Fatalf("cursor = %d, want last item", m.cursor)
	}

	for range 5 {
		m, _ = menuKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.customSize != maxMenuSize {
		t.Errorf("customSize = %d, want capped at %d", m.customSize, maxMenuSize)
	}

	for range 20 {
		m, _ = menuKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.customSize != engine.MinSize {
		t.Errorf("customSize = %d, want floored at %d", m.customSize, engine.MinSize)
	}

	m, cmd := menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select and leave the menu")
	}
	if got := m.Selected(); got.Size != engine.MinSize || got.GameID != "2048_2x2" {
		t.Errorf("Selected() = %+v, want the 2x2 custom board", got)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	sb, _ := menuKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !sb.WantsScoreboard() {
		t.Error("tab should request the scoreboard")
	}

	q, _ := menuKey(t, m, runeKey('q'))
	if !q.IsQuitting() || q.View() != "" {
		t.Error("q should quit with an empty view")
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.UpdateBestScore("2048", 5120); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, testConfig())
	if got := m.items[m.cursor].Best; got != 5120 {
		t.Errorf("best for the classic board = %d, want 5120", got)
	}
	if !strings.Contains(m.View(), "best 5120") {
		t.Error("View() should show the stored best score")
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(MenuModel)

	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("abcdef", 3); got != "abcdef" {
		t.Errorf("centerText should not truncate, got %q", got)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(0, 1, '2', core.TileColor(2))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") {
		t.Errorf("first line %q should contain the text run", lines[0])
	}
	if !strings.Contains(lines[1], "2") {
		t.Errorf("second line %q should contain the tile", lines[1])
	}
}

func TestStyleFor(t *testing.T) {
	if !styleFor(core.TileColor(2048)).GetBold() {
		t.Error("2048 tiles should be bold")
	}
	if styleFor(core.TileColor(2)).GetBold() {
		t.Error("2 tiles should not be bold")
	}
	if styleFor(core.Color(200)).GetBold() {
		t.Error("unknown colors should fall back to the default style")
	}
}

func sessionKey(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return model
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), log.New(io.Discard))
	m.Init()

	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("enter should start a board")
	}
	if !strings.Contains(m.View(), "Score:") {
		t.Error("board view should show the HUD")
	}

	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = sessionKey(t, m, TickMsg(time.Now()))
	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatal("esc twice should pause and return to the menu")
	}

	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view should show its title")
	}

	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatal("esc should leave the scoreboard")
	}

	m = sessionKey(t, m, runeKey('q'))
	if !m.quitting || m.View() != "" {
		t.Error("q should end the session")
	}
}
