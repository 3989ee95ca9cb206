package model

import (
	"fmt"
	"strings"
)

// StartPlacement is the piece-placement field of the standard starting
// position. Ranks are listed from row 0 (black's back rank) down to row 7.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func pieceFromChar(c byte) (Piece, bool) {
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
		c += 'a' - 'A'
	}
	switch c {
	case 'k':
		return NewPiece(King, color), true
	case 'q':
		return NewPiece(Queen, color), true
	case 'r':
		return NewPiece(Rook, color), true
	case 'b':
		return NewPiece(Bishop, color), true
	case 'n':
		return NewPiece(Knight, color), true
	case 'p':
		return NewPiece(Pawn, color), true
	}
	return Empty, false
}

// ParsePlacement builds a board from a FEN piece-placement field. Anything
// after the first space (side to move, castling rights...) is ignored.
func ParsePlacement(placement string) (*Board, error) {
	if i := strings.IndexByte(placement, ' '); i >= 0 {
		placement = placement[:i]
	}
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return nil, fmt.Errorf("invalid placement %q: expected %d ranks, got %d", placement, Size, len(ranks))
	}

	board := &Board{}
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			piece, ok := pieceFromChar(c)
			if !ok {
				return nil, fmt.Errorf("invalid placement %q: unknown piece %q", placement, c)
			}
			if col >= Size {
				return nil, fmt.Errorf("invalid placement %q: rank %d overflows", placement, row)
			}
			board[row][col] = piece
			col++
		}
		if col != Size {
			return nil, fmt.Errorf("invalid placement %q: rank %d has %d squares", placement, row, col)
		}
	}
	return board, nil
}

// Placement encodes the board as a FEN piece-placement field.
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < Size; col++ {
			if b[row][col].IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(b[row][col].Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}
