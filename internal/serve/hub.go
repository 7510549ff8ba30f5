// Package serve exposes the message channel to a presentation layer
// over websocket.
package serve

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atlanticwaters/podfill/models"
)

// Hub tracks connected presentation clients and broadcasts outbound
// messages to all of them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(ws *websocket.Conn) {
	h.mu.Lock()
	h.clients[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Emit implements batch.Emitter by broadcasting to every client. Clients
// that fail a write are dropped.
func (h *Hub) Emit(msg models.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.clients {
		_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := ws.WriteJSON(msg); err != nil {
			_ = ws.Close()
			delete(h.clients, ws)
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
