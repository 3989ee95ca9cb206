package service

import (
	"fmt"

	"github.com/benbeisheim/chessboard-backend/internal/game"
	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/movegen"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(placement string) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, placement); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (game.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) Moves(gameID string, p model.Position) (movegen.MoveSet, error) {
	return gs.gameManager.Moves(gameID, p)
}

func (gs *GameService) Select(gameID string, p model.Position) (movegen.MoveSet, error) {
	return gs.gameManager.Select(gameID, p)
}

// HandleMove applies a move and returns the resulting state.
func (gs *GameService) HandleMove(gameID string, to model.Position) (game.GameState, error) {
	if _, err := gs.gameManager.MakeMove(gameID, to); err != nil {
		return game.GameState{}, err
	}
	return gs.gameManager.GetGameState(gameID)
}

// HandleClick applies the board's click rules and returns the resulting state.
func (gs *GameService) HandleClick(gameID string, p model.Position) (game.GameState, error) {
	if _, err := gs.gameManager.Click(gameID, p); err != nil {
		return game.GameState{}, err
	}
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) Reset(gameID string) (game.GameState, error) {
	if err := gs.gameManager.Reset(gameID); err != nil {
		return game.GameState{}, err
	}
	return gs.gameManager.GetGameState(gameID)
}

// RegisterConnection attaches an observer to the game and returns the id
// it was registered under.
func (gs *GameService) RegisterConnection(gameID string, conn game.Conn) (string, error) {
	connID := uuid.New().String()
	if err := gs.gameManager.RegisterConnection(gameID, connID, conn); err != nil {
		return "", err
	}
	return connID, nil
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	gs.gameManager.UnregisterConnection(gameID, connID)
}
