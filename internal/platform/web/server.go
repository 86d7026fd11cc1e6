// Package web exposes hosted 2048 games over a JSON REST API and pushes
// state changes to websocket clients.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-2048/internal/controller"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// Server is the REST and websocket front of a session.Manager.
type Server struct {
	sessions *session.Manager
	hub      *Hub
	router   *mux.Router
	logger   *log.Logger
	mcp      http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMCPHandler mounts an MCP JSON-RPC endpoint at /mcp.
func WithMCPHandler(h http.Handler) Option {
	return func(s *Server) {
		s.mcp = h
	}
}

// NewServer creates a server over sessions. hub may be nil to disable
// websocket pushes.
func NewServer(sessions *session.Manager, hub *Hub, opts ...Option) *Server {
	s := &Server{
		sessions: sessions,
		hub:      hub,
		router:   mux.NewRouter(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	if hub != nil {
		sessions.Subscribe(hub.Publish)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/variants", s.handleListVariants).Methods("GET")

	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods("DELETE")
	api.HandleFunc("/games/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/games/{id}/reset", s.handleReset).Methods("POST")

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.handleWebSocket)
	}
	if s.mcp != nil {
		s.router.Handle("/mcp", s.mcp).Methods("POST")
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidDirection), errors.Is(err, controller.ErrInvalidSize):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrTooManyGames):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	respondError(w, status, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"games":  s.sessions.Len(),
	})
}

func (s *Server) handleListVariants(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, registry.List())
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Size int    `json:"size,omitempty"`
		Seed *int64 `json:"seed,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		view session.View
		err  error
	)
	if req.Seed != nil {
		view, err = s.sessions.Create(req.Size, *req.Seed)
	} else {
		view, err = s.sessions.CreateRandom(req.Size)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games := s.sessions.List()
	respondJSON(w, http.StatusOK, map[string]any{
		"count": len(games),
		"games": games,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.sessions.Delete(id); err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dir, err := engine.ParseDirection(req.Direction)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view, err := s.sessions.TakeTurn(id, dir)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Debug("move", "game", id, "direction", dir, "score", view.Score, "game_over", view.GameOver)
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.Reset(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		respondError(w, http.StatusBadRequest, "game parameter required")
		return
	}

	if _, err := s.sessions.Get(gameID); err != nil {
		s.fail(w, r, err)
		return
	}

	s.hub.ServeWS(w, r, gameID)
}
