package controller

import (
	"errors"

	"github.com/benbeisheim/chessboard-backend/internal/game"
	"github.com/benbeisheim/chessboard-backend/internal/middleware"
	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Placement string `json:"placement"`
}

type squareRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

var errMissingSquare = errors.New("row and col are required")

func parseSquare(c *fiber.Ctx) (model.Position, error) {
	var req squareRequest
	if err := c.BodyParser(&req); err != nil {
		return model.Position{}, err
	}
	if req.Row == nil || req.Col == nil {
		return model.Position{}, errMissingSquare
	}
	return model.Position{Row: *req.Row, Col: *req.Col}, nil
}

// statusFor maps service and game errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrBadPlacement), errors.Is(err, game.ErrOutOfBounds):
		return fiber.StatusBadRequest
	case errors.Is(err, game.ErrNoSelection), errors.Is(err, game.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameOver):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
	}

	gameID, err := gc.gameService.CreateGame(req.Placement)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(middleware.GameID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(middleware.GameID(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMoves reports the destinations of the piece at ?row=&col= without
// changing the selection.
func (gc *GameController) GetMoves(c *fiber.Ctx) error {
	p := model.Position{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}

	moves, err := gc.gameService.Moves(middleware.GameID(c), p)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(moves)
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	p, err := parseSquare(c)
	if err != nil {
		return badRequest(c, err)
	}

	moves, err := gc.gameService.Select(middleware.GameID(c), p)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(moves)
}

func (gc *GameController) Move(c *fiber.Ctx) error {
	p, err := parseSquare(c)
	if err != nil {
		return badRequest(c, err)
	}

	gameState, err := gc.gameService.HandleMove(middleware.GameID(c), p)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Click(c *fiber.Ctx) error {
	p, err := parseSquare(c)
	if err != nil {
		return badRequest(c, err)
	}

	gameState, err := gc.gameService.HandleClick(middleware.GameID(c), p)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	gameState, err := gc.gameService.Reset(middleware.GameID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}
