package game

import (
	"errors"
	"sync"

	"github.com/benbeisheim/chessboard-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

var ErrDuplicateConnection = errors.New("connection already registered")

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

// GameConnections holds the observers of one game, keyed by connection id.
// Writes are serialized by writeMu; sent is the newest state version
// written so stale snapshots are dropped.
type GameConnections struct {
	connections map[string]Conn
	mu          sync.RWMutex
	writeMu     sync.Mutex
	sent        uint64
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// RegisterConnection adds an observer and sends it the current state.
func (g *Game) RegisterConnection(connID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[connID]; exists {
		g.connections.mu.Unlock()
		return ErrDuplicateConnection
	}
	g.connections.connections[connID] = conn
	g.connections.mu.Unlock()
	log.Debugw("connection registered", "game", g.ID, "conn", connID)

	state := g.GetState()
	go func() {
		g.connections.writeMu.Lock()
		defer g.connections.writeMu.Unlock()
		if state.Version < g.connections.sent {
			// a newer broadcast already reached this connection
			return
		}
		g.connections.send(connID, conn, state)
	}()
	return nil
}

func (g *Game) UnregisterConnection(connID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[connID]; exists {
		delete(g.connections.connections, connID)
		log.Debugw("connection unregistered", "game", g.ID, "conn", connID)
	}
}

// ConnectionCount returns the number of registered observers.
func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()

	return len(g.connections.connections)
}

// broadcast must be called with g.mu held. It bumps the state version and
// hands a snapshot to a separate goroutine for writing.
func (g *Game) broadcast() {
	g.state.Version++
	state := g.snapshot()
	go g.connections.broadcast(state)
}

func (gc *GameConnections) broadcast(state GameState) {
	gc.writeMu.Lock()
	defer gc.writeMu.Unlock()
	if state.Version <= gc.sent {
		return
	}
	gc.sent = state.Version

	gc.mu.RLock()
	active := make(map[string]Conn, len(gc.connections))
	for connID, conn := range gc.connections {
		active[connID] = conn
	}
	gc.mu.RUnlock()

	for connID, conn := range active {
		gc.send(connID, conn, state)
	}
}

func (gc *GameConnections) send(connID string, conn Conn, state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorw("failed to marshal state", "conn", connID, "error", err)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Warnw("failed to send state, dropping connection", "conn", connID, "error", err)
		gc.mu.Lock()
		delete(gc.connections, connID)
		gc.mu.Unlock()
	}
}
