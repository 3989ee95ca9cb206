package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessboard-backend/internal/game"
	"github.com/benbeisheim/chessboard-backend/internal/middleware"
	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serializes writes: broadcasts and direct replies share the
// same websocket.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.LocalGameID).(string)
	if gameID == "" {
		gameID = c.Params("gameId")
	}
	conn := &lockedConn{conn: c}

	connID, err := wsc.gameService.RegisterConnection(gameID, conn)
	if err != nil {
		log.Warnw("failed to register connection", "game", gameID, "error", err)
		wsc.sendError(conn, err.Error())
		c.Close()
		return
	}
	log.Infow("websocket connected", "game", gameID, "conn", connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("websocket read ended", "game", gameID, "conn", connID, "error", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, fmt.Sprintf("parse error: %v", err))
			continue
		}
		if err := wsc.handleMessage(gameID, conn, msg); err != nil {
			log.Debugw("message rejected", "game", gameID, "type", msg.Type, "error", err)
			wsc.sendError(conn, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, connID)
	log.Infow("websocket disconnected", "game", gameID, "conn", connID)
}

// handleMessage applies one inbound message. State changes reach the client
// through the game's broadcast; select additionally answers with the moves.
func (wsc *WebSocketController) handleMessage(gameID string, conn game.Conn, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		p, err := decodeSquare(msg.Payload)
		if err != nil {
			return err
		}
		moves, err := wsc.gameService.Select(gameID, p)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeMoves, moves)
		if err != nil {
			return err
		}
		return conn.WriteJSON(reply)

	case ws.MessageTypeMove:
		p, err := decodeSquare(msg.Payload)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.HandleMove(gameID, p)
		return err

	case ws.MessageTypeClick:
		p, err := decodeSquare(msg.Payload)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.HandleClick(gameID, p)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func decodeSquare(payload json.RawMessage) (model.Position, error) {
	var square ws.SquarePayload
	if err := json.Unmarshal(payload, &square); err != nil {
		return model.Position{}, fmt.Errorf("invalid square payload: %w", err)
	}
	return model.Position{Row: square.Row, Col: square.Col}, nil
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(conn game.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Debugw("failed to send error", "error", err)
	}
}
