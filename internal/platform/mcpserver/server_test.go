package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vovakirdan/tui-2048/internal/session"
)

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]any) (string, bool) {
	t.Helper()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("%s returned error: %v", name, err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("%s returned no content", name)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("%s: expected text content", name)
	}
	return text.Text, result.IsError
}

var gameIDPattern = regexp.MustCompile(`Created game: ([0-9a-f-]{36})`)

func newGame(t *testing.T, s *Server, args map[string]any) string {
	t.Helper()
	text, isErr := call(t, s.handleNewGame, "new_game", args)
	if isErr {
		t.Fatalf("new_game failed: %s", text)
	}
	m := gameIDPattern.FindStringSubmatch(text)
	if m == nil {
		t.Fatalf("no game id in %q", text)
	}
	return m[1]
}

func TestNewGameAndState(t *testing.T) {
	s := New(session.NewManager(), "test", nil)

	id := newGame(t, s, map[string]any{"size": float64(3), "seed": float64(42)})

	text, isErr := call(t, s.handleGameState, "game_state", map[string]any{"game_id": id})
	if isErr {
		t.Fatalf("game_state failed: %s", text)
	}
	if !strings.Contains(text, "Score: 0") || !strings.Contains(text, "State: playing") {
		t.Errorf("unexpected state text:\n%s", text)
	}

	// Header plus blank line plus three board rows.
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 5 {
		t.Errorf("expected 3 board rows, got:\n%s", text)
	}
}

func TestNewGameSeedZero(t *testing.T) {
	s := New(session.NewManager(), "test", nil)

	var states []string
	for range 2 {
		id := newGame(t, s, map[string]any{"seed": float64(0)})
		text, isErr := call(t, s.handleGameState, "game_state", map[string]any{"game_id": id})
		if isErr {
			t.Fatalf("game_state failed: %s", text)
		}
		states = append(states, text)
	}
	if states[0] != states[1] {
		t.Errorf("seed 0 games differ:\n%s\nvs\n%s", states[0], states[1])
	}
}

func TestTakeTurn(t *testing.T) {
	s := New(session.NewManager(), "test", nil)
	id := newGame(t, s, map[string]any{"seed": float64(7)})

	movedOnce := false
	for _, dir := range []string{"left", "right", "up", "down"} {
		text, isErr := call(t, s.handleTakeTurn, "take_turn", map[string]any{"game_id": id, "direction": dir})
		if isErr {
			t.Fatalf("take_turn %s failed: %s", dir, text)
		}
		if strings.HasPrefix(text, "Moved "+dir) {
			movedOnce = true
		} else if !strings.Contains(text, "changed nothing") {
			t.Errorf("unexpected take_turn text:\n%s", text)
		}
	}
	if !movedOnce {
		t.Error("no direction moved on a fresh board")
	}
}

func TestToolErrors(t *testing.T) {
	s := New(session.NewManager(), "test", nil)
	id := newGame(t, s, nil)

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]any
		want    string
	}{
		{"bad direction", s.handleTakeTurn, map[string]any{"game_id": id, "direction": "diagonal"}, "invalid direction"},
		{"unknown game turn", s.handleTakeTurn, map[string]any{"game_id": "missing", "direction": "up"}, "not found"},
		{"unknown game state", s.handleGameState, map[string]any{"game_id": "missing"}, "not found"},
		{"unknown game reset", s.handleResetGame, map[string]any{"game_id": "missing"}, "not found"},
		{"bad size", s.handleNewGame, map[string]any{"size": float64(1)}, "invalid board size"},
		{"fractional size", s.handleNewGame, map[string]any{"size": 3.5}, "integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, tt.handler, tt.name, tt.args)
			if !isErr {
				t.Errorf("expected tool error, got %q", text)
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("error %q does not mention %q", text, tt.want)
			}
		})
	}
}

func TestListAndReset(t *testing.T) {
	s := New(session.NewManager(), "test", nil)
	a := newGame(t, s, map[string]any{"size": float64(4)})
	b := newGame(t, s, map[string]any{"size": float64(5)})

	text, _ := call(t, s.handleListGames, "list_games", map[string]any{})
	if !strings.Contains(text, "Hosted games (2)") || !strings.Contains(text, a) || !strings.Contains(text, b) {
		t.Errorf("list_games:\n%s", text)
	}

	call(t, s.handleTakeTurn, "take_turn", map[string]any{"game_id": a, "direction": "left"})
	text, isErr := call(t, s.handleResetGame, "reset_game", map[string]any{"game_id": a})
	if isErr || !strings.Contains(text, "Moves: 0") {
		t.Errorf("reset_game:\n%s", text)
	}
}

func TestFormatView(t *testing.T) {
	v := session.View{
		Score:    20,
		Moves:    3,
		MaxTile:  128,
		State:    "game_over",
		GameOver: true,
		Grid:     [][]int{{128, 2}, {0, 16}},
	}

	out := FormatView(v)
	for _, want := range []string{"128   2", "  .  16", "GAME OVER - final score 20"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatView missing %q:\n%s", want, out)
		}
	}
}

func TestHTTPHandler(t *testing.T) {
	s := New(session.NewManager(), "test", nil)
	h := s.HTTPHandler()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/mcp", strings.NewReader(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"2048"`) {
		t.Errorf("initialize response should name the server: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/mcp", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rr.Code)
	}
}
