// Package game implements a hot-seat chess session: one board shared by
// both players, a selected piece with its highlighted destinations, and
// the observers that receive every state change.
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/movegen"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNoSelection = errors.New("no piece selected")
	ErrIllegalMove = errors.New("illegal move")
	ErrOutOfBounds = errors.New("position out of bounds")
)

type Status string

const (
	StatusActive       Status = "active"
	StatusKingCaptured Status = "kingCaptured"
)

// Sound tells the client which cue to play for the last applied move.
type Sound string

const (
	SoundNone    Sound = ""
	SoundMove    Sound = "move"
	SoundCapture Sound = "capture"
)

// Game is one board and the session state around it. All operations are
// serialized, so generating highlights and applying a move never overlap.
type Game struct {
	ID          string
	mu          sync.Mutex
	initial     string
	state       GameState
	connections *GameConnections
}

// GameState is the snapshot sent to clients.
type GameState struct {
	Board          *model.Board    `json:"board"`
	Placement      string          `json:"placement"`
	Status         Status          `json:"status"`
	Winner         model.Color     `json:"winner,omitempty"`
	KingSquare     *model.Position `json:"kingSquare"`
	Sound          Sound           `json:"sound"`
	SelectedSquare *model.Position `json:"selectedSquare"`
	Highlights     movegen.MoveSet `json:"highlights"`
	LastMove       *model.Move     `json:"lastMove"`
	Version        uint64          `json:"version"`
}

// NewGame starts a session on the standard layout.
func NewGame(id string) *Game {
	g, _ := NewGameFromPlacement(id, model.StartPlacement)
	return g
}

// NewGameFromPlacement starts a session on a custom layout given as a FEN
// piece-placement field.
func NewGameFromPlacement(id, placement string) (*Game, error) {
	board, err := model.ParsePlacement(placement)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:          id,
		initial:     board.Placement(),
		state:       newGameState(board),
		connections: NewGameConnections(),
	}, nil
}

func newGameState(board *model.Board) GameState {
	return GameState{
		Board:      board,
		Status:     StatusActive,
		Sound:      SoundNone,
		Highlights: movegen.NewMoveSet(),
	}
}

// GetState returns a copy of the current state. The board in the copy is
// detached from the live one.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	state := g.state
	board := *g.state.Board
	state.Board = &board
	state.Placement = board.Placement()
	return state
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Status != StatusActive
}

// Moves returns the destinations of the piece on p without touching the
// selection.
func (g *Game) Moves(p model.Position) (movegen.MoveSet, error) {
	if !p.InBounds() {
		return movegen.MoveSet{}, fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, p.Row, p.Col)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return movegen.GenerateFor(p, g.state.Board), nil
}

// Select makes the piece on p the selected piece and highlights its
// destinations. Selecting an empty square clears the selection.
func (g *Game) Select(p model.Position) (movegen.MoveSet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPlayable(p); err != nil {
		return movegen.MoveSet{}, err
	}
	ms := g.selectSquare(p)
	g.broadcast()
	return ms, nil
}

// Move moves the selected piece to one of its highlighted destinations.
func (g *Game) Move(to model.Position) (model.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPlayable(to); err != nil {
		return model.Move{}, err
	}
	if g.state.SelectedSquare == nil {
		return model.Move{}, ErrNoSelection
	}
	if !g.state.Highlights.Contains(to) {
		return model.Move{}, fmt.Errorf("%w: %s to %s", ErrIllegalMove, g.state.SelectedSquare, to)
	}
	move := g.executeMove(*g.state.SelectedSquare, to)
	g.broadcast()
	return move, nil
}

// Click follows the board's click rules: a highlighted square receives the
// selected piece, any other square becomes the new selection. The returned
// move is nil when the click only selected.
func (g *Game) Click(p model.Position) (*model.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkPlayable(p); err != nil {
		return nil, err
	}
	defer g.broadcast()

	if g.state.SelectedSquare != nil && g.state.Highlights.Contains(p) {
		move := g.executeMove(*g.state.SelectedSquare, p)
		return &move, nil
	}
	g.selectSquare(p)
	return nil, nil
}

// Reset puts the board back to the layout the game started from.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	board, err := model.ParsePlacement(g.initial)
	if err != nil {
		// initial was produced by Board.Placement
		panic(err)
	}
	version := g.state.Version
	g.state = newGameState(board)
	g.state.Version = version
	log.Infow("game reset", "game", g.ID)
	g.broadcast()
}

func (g *Game) checkPlayable(p model.Position) error {
	if g.state.Status != StatusActive {
		return ErrGameOver
	}
	if !p.InBounds() {
		return fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, p.Row, p.Col)
	}
	return nil
}

func (g *Game) selectSquare(p model.Position) movegen.MoveSet {
	g.clearSelection()
	if g.state.Board.IsEmpty(p) {
		return g.state.Highlights
	}
	ms := movegen.GenerateFor(p, g.state.Board)
	g.state.SelectedSquare = &p
	g.state.Highlights = ms
	log.Debugw("piece selected", "game", g.ID, "square", p.String(),
		"quiet", len(ms.Quiet), "capture", len(ms.Capture))
	return ms
}

func (g *Game) clearSelection() {
	g.state.SelectedSquare = nil
	g.state.Highlights = movegen.NewMoveSet()
}

func (g *Game) executeMove(from, to model.Position) model.Move {
	piece := g.state.Board.At(from)
	captured := g.state.Board.Relocate(from, to)

	move := model.Move{Piece: piece, From: from, To: to}
	g.state.Sound = SoundMove
	if !captured.IsEmpty() {
		move.Captured = &captured
		g.state.Sound = SoundCapture
	}
	g.state.LastMove = &move
	g.clearSelection()

	log.Debugw("move applied", "game", g.ID, "piece", piece.Type.String(),
		"from", from.String(), "to", to.String(), "capture", move.IsCapture())

	if captured.Type == model.King {
		g.state.Status = StatusKingCaptured
		g.state.Winner = piece.Color
		g.state.KingSquare = &to
		log.Infow("king captured", "game", g.ID, "winner", piece.Color.String(), "square", to.String())
	}
	return move
}
