package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is pushed to websocket clients watching a game.
type Message struct {
	GameID string        `json:"game_id"`
	Event  string        `json:"event"`
	State  *session.View `json:"state,omitempty"`
}

// Client is one websocket connection watching a game.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

// Hub fans game events out to the websocket clients of each game.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	games map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	count      chan chan int
	done       chan struct{}

	logger *log.Logger
}

// NewHub creates a hub. Call Run to start its event loop.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		games:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes hub events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.games {
				for c := range clients {
					h.unregisterClient(c)
				}
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)

		case reply := <-h.count:
			n := 0
			for _, clients := range h.games {
				n += len(clients)
			}
			reply <- n
		}
	}
}

// Publish queues a session event for the game's clients. It never blocks;
// events are dropped when the queue is full.
func (h *Hub) Publish(ev session.Event) {
	view := ev.View
	msg := &Message{GameID: ev.GameID, Event: ev.Type, State: &view}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("websocket queue full, dropping event", "game", ev.GameID, "event", ev.Type)
	}
}

// Clients returns the number of connected clients, or 0 once Run returned.
func (h *Hub) Clients() int {
	reply := make(chan int)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// ServeWS upgrades the request and attaches the connection to gameID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		gameID: gameID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) registerClient(client *Client) {
	if h.games[client.gameID] == nil {
		h.games[client.gameID] = make(map[*Client]bool)
	}
	h.games[client.gameID][client] = true

	h.logger.Debug("websocket client registered", "game", client.gameID, "clients", len(h.games[client.gameID]))
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.games[client.gameID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.games, client.gameID)
	}

	h.logger.Debug("websocket client unregistered", "game", client.gameID, "clients", len(clients))
}

func (h *Hub) broadcastMessage(msg *Message) {
	clients, ok := h.games[msg.GameID]
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot marshal websocket message", "error", err)
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer.
			h.unregisterClient(client)
		}
	}

	if msg.Event == session.EventDeleted {
		for client := range h.games[msg.GameID] {
			h.unregisterClient(client)
		}
	}
}

// readPump discards client messages and keeps the read deadline fresh.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", "game", c.gameID, "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages, one websocket frame each, plus pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
