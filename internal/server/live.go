// Package server provides the HTTP server for the Mudra pointer control system.
package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Update is one control loop snapshot pushed to live viewers.
type Update struct {
	Hands     []detector.HandLandmarks `json:"hands"`
	Intents   []control.PointerIntent  `json:"intents"`
	Timestamp int64                    `json:"timestamp"`
}

// LiveHandler broadcasts control loop snapshots to WebSocket clients.
// The control loop publishes into it; it never reads the camera itself,
// so a slow viewer cannot stall pointer control.
type LiveHandler struct {
	clients map[*websocket.Conn]chan Update
	mu      sync.RWMutex
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		clients: make(map[*websocket.Conn]chan Update),
	}
}

// Publish fans an update out to all connected clients. It never blocks:
// updates for clients with full buffers are dropped.
func (h *LiveHandler) Publish(u Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		select {
		case ch <- u:
		default:
		}
	}
}

// ClientCount returns the number of connected viewers.
func (h *LiveHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := make(chan Update, 8)

	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Drain incoming messages so close frames are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for u := range ch {
		if err := conn.WriteJSON(u); err != nil {
			return
		}
	}
}
