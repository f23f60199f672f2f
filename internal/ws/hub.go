package ws

import (
	"encoding/json"
	"sync"

	"pixel_plaza/internal/logger"
)

// Hub fans announcements out to every connected client. It carries global
// notifications only (event starts, leaderboard shifts); per-user state
// always travels over the REST API.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logger.Debug("ws client connected", "clients", n)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	logger.Debug("ws client disconnected", "clients", n)
}

// Broadcast sends a typed announcement to every client. Slow clients are
// dropped rather than allowed to stall the rest.
func (h *Hub) Broadcast(kind string, payload any) {
	msg, err := json.Marshal(map[string]any{"type": kind, "data": payload})
	if err != nil {
		logger.Warn("ws broadcast marshal failed", "error", err)
		return
	}

	h.mu.RLock()
	stale := make([]*Client, 0)
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.unregister(c)
	}
}
