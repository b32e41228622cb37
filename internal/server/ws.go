// Package server provides the HTTP server that connects the Phototree
// backend to the browser rendering frontend.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHub pushes gesture/mode snapshots to connected rendering clients
// over WebSocket. Publish never blocks the caller: when the hub falls
// behind, stale snapshots are dropped in favor of the newest one.
type StateHub struct {
	clients map[*websocket.Conn]bool
	updates chan []byte
	mu      sync.Mutex
	last    []byte
}

// NewStateHub creates a StateHub and starts its broadcast loop.
func NewStateHub() *StateHub {
	h := &StateHub{
		clients: make(map[*websocket.Conn]bool),
		updates: make(chan []byte, 16),
	}
	go h.run()
	return h
}

// Publish queues a snapshot for broadcast. Safe to call from the gesture
// loop; it never blocks.
func (h *StateHub) Publish(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		log.Printf("state hub: marshal: %v", err)
		return
	}

	select {
	case h.updates <- msg:
	default:
		// Full: evict one stale snapshot and retry once
		select {
		case <-h.updates:
		default:
		}
		select {
		case h.updates <- msg:
		default:
		}
	}
}

// ServeHTTP handles WebSocket upgrade requests. New clients immediately
// receive the most recent snapshot.
func (h *StateHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	if h.last != nil {
		conn.WriteMessage(websocket.TextMessage, h.last)
	}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// run delivers queued snapshots to all connected clients.
func (h *StateHub) run() {
	for msg := range h.updates {
		h.mu.Lock()
		h.last = msg

		var broken []*websocket.Conn
		for conn := range h.clients {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				broken = append(broken, conn)
			}
		}
		for _, conn := range broken {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	}
}
