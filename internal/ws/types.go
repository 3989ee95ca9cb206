package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeSelect MessageType = "select"
	MessageTypeMove   MessageType = "move"
	MessageTypeClick  MessageType = "click"
	MessageTypeReset  MessageType = "reset"

	// server -> client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeMoves     MessageType = "moves"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SquarePayload addresses a board square in select, move and click messages.
type SquarePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ErrorPayload is sent back when an inbound message cannot be handled.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage encodes payload as JSON and wraps it in a Message.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}
