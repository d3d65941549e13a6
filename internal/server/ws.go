package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

// previewUpdate is the message pushed to live-preview clients after each
// successful plan turn.
type previewUpdate struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	HTML      string `json:"html"`
}

// previewClient serializes writes to a single connection. The websocket
// package allows at most one concurrent writer, and broadcasts race the ping
// loop without this.
type previewClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *previewClient) writeJSON(update previewUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteJSON(update)
}

func (c *previewClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// previewHub fans rendered HTML out to the websocket clients watching each
// session.
type previewHub struct {
	mu      sync.Mutex
	clients map[string]map[*previewClient]struct{}
	logger  zerolog.Logger
}

func newPreviewHub(logger zerolog.Logger) *previewHub {
	return &previewHub{
		clients: make(map[string]map[*previewClient]struct{}),
		logger:  logger,
	}
}

func (h *previewHub) add(sessionID string, client *previewClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[*previewClient]struct{})
	}
	h.clients[sessionID][client] = struct{}{}
}

func (h *previewHub) remove(sessionID string, client *previewClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[sessionID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, sessionID)
		}
	}
}

// Broadcast sends the latest preview HTML to every client watching sessionID.
// Write failures drop the client.
func (h *previewHub) Broadcast(sessionID string, html []byte) {
	update := previewUpdate{Type: "preview", SessionID: sessionID, HTML: string(html)}

	h.mu.Lock()
	clients := make([]*previewClient, 0, len(h.clients[sessionID]))
	for client := range h.clients[sessionID] {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.writeJSON(update); err != nil {
			h.logger.Debug().Err(err).Str("session_id", sessionID).Msg("dropping preview client")
			client.conn.Close()
			h.remove(sessionID, client)
		}
	}
}

// serve upgrades the request and keeps the connection alive with pings until
// the client goes away. Inbound messages are discarded; the socket is
// push-only.
func (h *previewHub) serve(w http.ResponseWriter, r *http.Request, sessionID string, initial []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &previewClient{conn: conn}
	h.add(sessionID, client)
	defer func() {
		h.remove(sessionID, client)
		conn.Close()
	}()

	if len(initial) > 0 {
		update := previewUpdate{Type: "preview", SessionID: sessionID, HTML: string(initial)}
		if err := client.writeJSON(update); err != nil {
			return
		}
	}

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := client.ping(); err != nil {
				return
			}
		}
	}
}
