// Package server streams live world snapshots to websocket viewers. The
// simulation loop pushes frames with Broadcast; viewers are read-only and a
// slow viewer loses frames rather than stalling the tick.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tomingtoming/geneuron/config"
	"github.com/tomingtoming/geneuron/world"
)

// sendBuffer is the per-viewer frame queue. Once it is full, Broadcast
// skips the viewer for that frame.
const sendBuffer = 8

// hello is the first message every viewer receives, so a UI can size its
// canvas before the first snapshot arrives.
type hello struct {
	Type        string  `json:"type"`
	Version     int     `json:"version"`
	WorldWidth  float64 `json:"world_width"`
	WorldHeight float64 `json:"world_height"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server owns the viewer connections. Broadcast may be called from the
// simulation goroutine while connections come and go on HTTP goroutines.
type Server struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	httpSrv *http.Server
}

// New creates a viewer server with no connections.
func New() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the HTTP handler exposing the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Start serves the handler on addr in a background goroutine.
func (s *Server) Start(addr string) {
	s.httpSrv = &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("viewer_server_failed", "err", err)
		}
	}()
	slog.Info("viewer_server_started", "addr", addr)
}

// Shutdown disconnects all viewers and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws_upgrade_failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	// Queue the hello before registering, so it precedes any snapshot.
	cfg := config.Cfg()
	if data, err := json.Marshal(hello{
		Type:        "hello",
		Version:     world.SnapshotVersion,
		WorldWidth:  cfg.World.Width,
		WorldHeight: cfg.World.Height,
	}); err == nil {
		c.send <- data
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	viewers := len(s.clients)
	s.mu.Unlock()
	slog.Info("viewer_connected", "remote", conn.RemoteAddr().String(), "viewers", viewers)

	go s.writeLoop(c)
	s.readLoop(c)
}

// writeLoop drains the client's frame queue onto the wire. It exits when the
// queue is closed or the connection breaks.
func (s *Server) writeLoop(c *client) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	c.conn.Close()
}

// readLoop discards viewer messages until the connection closes. Viewers are
// read-only; reading is only needed to notice the close handshake.
func (s *Server) readLoop(c *client) {
	defer s.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	viewers := len(s.clients)
	s.mu.Unlock()
	slog.Info("viewer_disconnected", "viewers", viewers)
}

// Broadcast marshals snap once and queues it to every connected viewer.
func (s *Server) Broadcast(snap world.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		slog.Error("snapshot_marshal_failed", "err", err)
		return
	}

	s.mu.Lock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default: // viewer too slow, skip this frame
		}
	}
	s.mu.Unlock()
}

// Viewers returns the number of connected viewers.
func (s *Server) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
