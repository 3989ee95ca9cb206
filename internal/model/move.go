package model

// Move describes a move that was applied to a board.
type Move struct {
	Piece    Piece    `json:"piece"`
	From     Position `json:"from"`
	To       Position `json:"to"`
	Captured *Piece   `json:"capturedPiece"` // nil for quiet moves
}

// IsCapture reports whether the move removed a piece from the board.
func (m Move) IsCapture() bool {
	return m.Captured != nil
}
