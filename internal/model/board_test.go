package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardMatchesStartPlacement(t *testing.T) {
	parsed, err := ParsePlacement(StartPlacement)
	require.NoError(t, err)

	assert.Equal(t, NewBoard(), parsed)
	assert.Equal(t, StartPlacement, NewBoard().Placement())
}

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()

	assert.Equal(t, NewPiece(Rook, Black), b.At(Position{Row: 0, Col: 0}))
	assert.Equal(t, NewPiece(Queen, Black), b.At(Position{Row: 0, Col: 3}))
	assert.Equal(t, NewPiece(King, Black), b.At(Position{Row: 0, Col: 4}))
	assert.Equal(t, NewPiece(King, White), b.At(Position{Row: 7, Col: 4}))
	for col := 0; col < Size; col++ {
		assert.Equal(t, NewPiece(Pawn, Black), b.At(Position{Row: 1, Col: col}))
		assert.Equal(t, NewPiece(Pawn, White), b.At(Position{Row: 6, Col: col}))
		for row := 2; row <= 5; row++ {
			assert.True(t, b.IsEmpty(Position{Row: row, Col: col}))
		}
	}
}

func TestColorAt(t *testing.T) {
	b := NewBoard()

	assert.Equal(t, Black, b.ColorAt(Position{Row: 1, Col: 2}))
	assert.Equal(t, White, b.ColorAt(Position{Row: 7, Col: 7}))
	assert.Equal(t, NoColor, b.ColorAt(Position{Row: 4, Col: 4}))
	assert.Equal(t, NoColor, b.ColorAt(Position{Row: 8, Col: 0}))
}

func TestColorOther(t *testing.T) {
	assert.Equal(t, Black, White.Other())
	assert.Equal(t, White, Black.Other())
	assert.Equal(t, NoColor, NoColor.Other())
}

func TestRelocate(t *testing.T) {
	b := NewBoard()
	from := Position{Row: 6, Col: 4}
	to := Position{Row: 1, Col: 3}

	captured := b.Relocate(from, to)

	assert.Equal(t, NewPiece(Pawn, Black), captured)
	assert.True(t, b.IsEmpty(from))
	assert.Equal(t, NewPiece(Pawn, White), b.At(to))
}

func TestBoardCellsDoNotAlias(t *testing.T) {
	b := NewBoard()
	copied := *b

	b.Set(Position{Row: 0, Col: 0}, Empty)

	assert.Equal(t, NewPiece(Rook, Black), copied[0][0])
	assert.Equal(t, NewPiece(Rook, Black), b.At(Position{Row: 0, Col: 7}))
}

func TestFind(t *testing.T) {
	b := NewBoard()

	p, ok := b.Find(NewPiece(King, White))
	require.True(t, ok)
	assert.Equal(t, Position{Row: 7, Col: 4}, p)

	b.Set(p, Empty)
	_, ok = b.Find(NewPiece(King, White))
	assert.False(t, ok)
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "a8", Position{Row: 0, Col: 0}.String())
	assert.Equal(t, "e2", Position{Row: 6, Col: 4}.String())
	assert.Equal(t, "h1", Position{Row: 7, Col: 7}.String())
}

func TestBoardString(t *testing.T) {
	b, err := ParsePlacement("k7/8/8/8/8/8/8/7K")
	require.NoError(t, err)

	lines := b.String()

	assert.Equal(t, "♚ . . . . . . .\n", lines[:len("♚ . . . . . . .\n")])
	assert.Contains(t, lines, ". . . . . . . ♔\n")
}

func TestBoardJSON(t *testing.T) {
	b, err := ParsePlacement("r7/8/8/8/8/8/8/7Q")
	require.NoError(t, err)

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var rows [][]*struct {
		Type  string `json:"type"`
		Color string `json:"color"`
	}
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, Size)
	require.NotNil(t, rows[0][0])
	assert.Equal(t, "rook", rows[0][0].Type)
	assert.Equal(t, "black", rows[0][0].Color)
	assert.Nil(t, rows[0][1])
	assert.Equal(t, "queen", rows[7][7].Type)
	assert.Equal(t, "white", rows[7][7].Color)
}

func TestPieceJSONRoundTrip(t *testing.T) {
	var p Piece
	require.NoError(t, json.Unmarshal([]byte(`{"type":"knight","color":"white"}`), &p))
	assert.Equal(t, NewPiece(Knight, White), p)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"dragon","color":"white"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"king","color":"green"}`), &p))
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "♔", NewPiece(King, White).Glyph())
	assert.Equal(t, "♟", NewPiece(Pawn, Black).Glyph())
	assert.Equal(t, " ", Empty.Glyph())
}
