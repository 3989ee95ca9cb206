package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Color is the side a piece belongs to. NoColor doubles as the marker
// returned for empty squares.
type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

// Other returns the opposing color. NoColor has no opponent.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return ""
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	case "":
		*c = NoColor
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PieceTypes lists every real piece kind in dispatch order.
var PieceTypes = [...]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}

var pieceTypeNames = [...]string{"", "king", "queen", "rook", "bishop", "knight", "pawn"}

func (p PieceType) String() string {
	if int(p) >= len(pieceTypeNames) {
		return ""
	}
	return pieceTypeNames[p]
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	for i, name := range pieceTypeNames {
		if name == string(text) {
			*p = PieceType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", text)
}

// letter is the lowercase placement letter for the kind.
func (p PieceType) letter() byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return ' '
}

// Piece is an immutable kind/color pair. The zero value is Empty.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// Empty marks a square with no piece on it.
var Empty = Piece{}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

var glyphs = map[Piece]string{
	{King, White}:   "♔",
	{Queen, White}:  "♕",
	{Rook, White}:   "♖",
	{Bishop, White}: "♗",
	{Knight, White}: "♘",
	{Pawn, White}:   "♙",
	{King, Black}:   "♚",
	{Queen, Black}:  "♛",
	{Rook, Black}:   "♜",
	{Bishop, Black}: "♝",
	{Knight, Black}: "♞",
	{Pawn, Black}:   "♟",
}

// Glyph returns the Unicode chess symbol used for display. It plays no
// part in identifying pieces.
func (p Piece) Glyph() string {
	if g, ok := glyphs[p]; ok {
		return g
	}
	return " "
}

// Char returns the placement letter: uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	c := p.Type.letter()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// Position addresses a square by row and column, both in [0,7].
// Row 0 is black's back rank.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Offset returns the position shifted by the given row and column deltas.
// The result may be off the board.
func (p Position) Offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// String renders the square in algebraic notation, e.g. "e2".
func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.Col+97, Size-p.Row)
}

const Size = 8

// Board is the 8x8 grid. Cells hold values, never shared references.
type Board [Size][Size]Piece

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting layout: black on rows 0-1,
// white on rows 6-7.
func NewBoard() *Board {
	board := &Board{}
	for col := 0; col < Size; col++ {
		board[0][col] = NewPiece(backRank[col], Black)
		board[1][col] = NewPiece(Pawn, Black)
		board[6][col] = NewPiece(Pawn, White)
		board[7][col] = NewPiece(backRank[col], White)
	}
	return board
}

// At returns the piece on p, or Empty when p is off the board.
func (b *Board) At(p Position) Piece {
	if !p.InBounds() {
		return Empty
	}
	return b[p.Row][p.Col]
}

// ColorAt returns the color of the piece on p, NoColor if the square is empty.
func (b *Board) ColorAt(p Position) Color {
	return b.At(p).Color
}

func (b *Board) IsEmpty(p Position) bool {
	return b.At(p) == Empty
}

// Set places piece on p. Off-board positions are ignored.
func (b *Board) Set(p Position, piece Piece) {
	if !p.InBounds() {
		return
	}
	b[p.Row][p.Col] = piece
}

// Relocate moves the piece on from to to, clearing from, and returns
// whatever previously stood on to.
func (b *Board) Relocate(from, to Position) Piece {
	piece := b.At(from)
	captured := b.At(to)
	b.Set(from, Empty)
	b.Set(to, piece)
	return captured
}

// Find returns the first square, scanning row by row, holding piece.
func (b *Board) Find(piece Piece) (Position, bool) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col] == piece {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// String draws the board with glyphs, row 0 on top.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if b[row][col].IsEmpty() {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(b[row][col].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MarshalJSON encodes the board as 8 rows of cells, null for empty squares.
func (b *Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, Size)
	for row := 0; row < Size; row++ {
		rows[row] = make([]*Piece, Size)
		for col := 0; col < Size; col++ {
			if b[row][col].IsEmpty() {
				continue
			}
			piece := b[row][col]
			rows[row][col] = &piece
		}
	}
	return json.Marshal(rows)
}
