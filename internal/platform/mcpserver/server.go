// Package mcpserver exposes hosted 2048 games as Model Context Protocol
// tools so that agents can play over stdio or HTTP.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

const instructions = `2048 - MCP Interface

Slide numbered tiles on a square board. Tiles with equal values merge when
they collide and the merged value is added to the score. After every move
that changes the board a new 2 (sometimes 4) appears in an empty cell. The
game ends when no move can change the board.

AVAILABLE TOOLS:
- new_game: start a game (optional size and seed)
- take_turn: slide tiles up, down, left or right
- game_state: show the board of a game
- list_games: list hosted games
- reset_game: start over on the same board size`

// Server registers the 2048 tools on an MCP server.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *log.Logger
}

// New creates the MCP server over sessions.
func New(sessions *session.Manager, version string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		sessions: sessions,
		logger:   logger,
		mcpServer: server.NewMCPServer(
			"2048",
			version,
			server.WithToolCapabilities(true),
			server.WithInstructions(instructions),
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// HTTPHandler handles single JSON-RPC messages posted to an endpoint.
func (s *Server) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := s.mcpServer.HandleMessage(r.Context(), body)
		if response == nil {
			// Notifications have no response.
			w.WriteHeader(http.StatusAccepted)
			return
		}

		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
}

func gameIDProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Game ID returned by new_game",
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new 2048 game and return its ID and board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"size": map[string]any{
					"type":        "integer",
					"description": "Board dimension N for an N x N board (default 4)",
				},
				"seed": map[string]any{
					"type":        "integer",
					"description": "Random seed for reproducible games (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "take_turn",
		Description: "Slide all tiles in a direction. Moves that change nothing are rejected and do not spawn a tile.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"game_id": gameIDProperty(),
				"direction": map[string]any{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
			},
			Required: []string{"game_id", "direction"},
		},
	}, s.handleTakeTurn)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Show the current board, score and state of a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"game_id": gameIDProperty(),
			},
			Required: []string{"game_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all hosted games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, s.handleListGames)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Start a fresh board of the same size for an existing game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"game_id": gameIDProperty(),
			},
			Required: []string{"game_id"},
		},
	}, s.handleResetGame)
}

func arguments(request mcp.CallToolRequest) map[string]any {
	args, _ := request.Params.Arguments.(map[string]any)
	return args
}

func hasArg(args map[string]any, key string) bool {
	v, ok := args[key]
	return ok && v != nil
}

// intArg reads a JSON number argument; missing means 0.
func intArg(args map[string]any, key string) (int64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	size, err := intArg(args, "size")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	seed, err := intArg(args, "seed")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var view session.View
	if hasArg(args, "seed") {
		view, err = s.sessions.Create(int(size), seed)
	} else {
		view, err = s.sessions.CreateRandom(int(size))
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("mcp new_game", "game", view.ID, "size", view.Size)
	return mcp.NewToolResultText("Created game: " + view.ID + "\n\n" + FormatView(view)), nil
}

func (s *Server) handleTakeTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	direction, _ := args["direction"].(string)

	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view, err := s.sessions.TakeTurn(gameID, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var header string
	switch {
	case view.Moved != nil && *view.Moved:
		header = fmt.Sprintf("Moved %s (+%d)\n\n", dir, view.Delta)
	case view.GameOver:
		header = "Game is over; use reset_game to play again\n\n"
	default:
		header = fmt.Sprintf("Move %s changed nothing; no tile spawned\n\n", dir)
	}
	return mcp.NewToolResultText(header + FormatView(view)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gameID, _ := arguments(request)["game_id"].(string)

	view, err := s.sessions.Get(gameID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(FormatView(view)), nil
}

func (s *Server) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games := s.sessions.List()

	var b strings.Builder
	fmt.Fprintf(&b, "Hosted games (%d):\n", len(games))
	for _, g := range games {
		fmt.Fprintf(&b, "- %s (%dx%d, score %d, %s)\n", g.ID, g.Size, g.Size, g.Score, g.State)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gameID, _ := arguments(request)["game_id"].(string)

	view, err := s.sessions.Reset(gameID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Game reset\n\n" + FormatView(view)), nil
}

// FormatView renders a game as a plain-text board with a status line.
func FormatView(v session.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d | Best: %d | Moves: %d | Max tile: %d | State: %s\n\n", v.Score, v.Best, v.Moves, v.MaxTile, v.State)

	width := len(fmt.Sprint(max(v.MaxTile, 2)))
	for _, row := range v.Grid {
		cells := make([]string, len(row))
		for i, val := range row {
			if val == 0 {
				cells[i] = fmt.Sprintf("%*s", width, ".")
				continue
			}
			cells[i] = fmt.Sprintf("%*d", width, val)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}

	if v.GameOver {
		fmt.Fprintf(&b, "\nGAME OVER - final score %d\n", v.Score)
	}
	return b.String()
}
