// Package websocket pushes save events to connected dashboard clients so the
// charts refresh without polling.
package websocket

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub maintains the set of active dashboard clients and broadcasts events
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	logger     *zap.Logger
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			h.logger.Debug("dashboard client connected", zap.String("client", client.id))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
				h.logger.Debug("dashboard client disconnected", zap.String("client", client.id))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead, drop for this client
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends an event to every connected client
func (h *Hub) Broadcast(event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"type":    event,
		"payload": payload,
	})
	if err != nil {
		h.logger.Warn("broadcast marshal failed", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast channel full, event dropped", zap.String("type", event))
	}
}
