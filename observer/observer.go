// Package observer turns the highlighter registry's Ui back-reference
// (spec.md §9's "cyclic back-reference" design note) into message passing:
// a websocket hub that broadcasts stats snapshots to any connected widget
// process after every Apply, so the registry never needs to know about
// the UI that watches it.
package observer

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hlight/htmlhighlighter/highlighter"
)

// Snapshot is the message broadcast to observers after each Apply.
type Snapshot struct {
	Queries   int `json:"queries"`
	Total     int `json:"total"`
	Highlight int `json:"highlight"`
}

// FromStats converts a highlighter.Stats into its wire Snapshot.
func FromStats(s highlighter.Stats) Snapshot {
	return Snapshot{Queries: s.Queries, Total: s.Total, Highlight: s.Highlight}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub accepts websocket connections from widget processes and broadcasts
// Snapshot messages to all of them.
type Hub struct {
	logger *log.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub returns an empty Hub. A nil logger defaults to log.Default().
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{logger: logger, conns: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request to a websocket connection and registers
// it as an observer. The connection is read from (and discarded) only to
// detect the widget process going away; the hub never expects incoming
// messages.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("observer: upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends snap to every connected observer, dropping (and closing)
// any connection that errors on write.
func (h *Hub) Broadcast(snap Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.logger.Printf("observer: marshal snapshot: %v", err)
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Printf("observer: broadcast to a widget failed, dropping connection: %v", err)
			h.remove(c)
		}
	}
}

// Watch wraps reg so every call to Apply broadcasts the resulting stats to
// hub afterward. Returned func replaces direct calls to reg.Apply.
func Watch(reg *highlighter.Registry, hub *Hub) func() {
	return func() {
		reg.Apply()
		hub.Broadcast(FromStats(reg.Stats()))
	}
}
