// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessboard-backend/internal/game"
	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/movegen"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrBadPlacement = errors.New("invalid placement")
)

type GameManager struct {
	games map[string]*game.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*game.Game),
	}
}

// CreateGame registers a new game. An empty placement means the standard
// starting layout.
func (gm *GameManager) CreateGame(gameID, placement string) error {
	if placement == "" {
		placement = model.StartPlacement
	}
	g, err := game.NewGameFromPlacement(gameID, placement)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPlacement, err)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	gm.games[gameID] = g
	log.Infow("game created", "game", gameID, "placement", g.GetState().Placement)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*game.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	g, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	log.Infow("game deleted", "game", gameID)
	return nil
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return len(gm.games)
}

func (gm *GameManager) GetGameState(gameID string) (game.GameState, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return game.GameState{}, err
	}
	return g.GetState(), nil
}

func (gm *GameManager) Moves(gameID string, p model.Position) (movegen.MoveSet, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return movegen.MoveSet{}, err
	}
	return g.Moves(p)
}

func (gm *GameManager) Select(gameID string, p model.Position) (movegen.MoveSet, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return movegen.MoveSet{}, err
	}
	return g.Select(p)
}

func (gm *GameManager) MakeMove(gameID string, to model.Position) (model.Move, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return model.Move{}, err
	}
	return g.Move(to)
}

func (gm *GameManager) Click(gameID string, p model.Position) (*model.Move, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return g.Click(p)
}

func (gm *GameManager) Reset(gameID string) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	g.Reset()
	return nil
}

func (gm *GameManager) RegisterConnection(gameID, connID string, conn game.Conn) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.RegisterConnection(connID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, connID string) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	g.UnregisterConnection(connID)
}
