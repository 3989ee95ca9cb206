package controller

import (
	"github.com/benbeisheim/chessboard-backend/internal/middleware"
	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the REST API under /api/game and the websocket
// endpoint under /ws/game/:gameId.
func SetupRoutes(app *fiber.App, gameService *service.GameService, wsConfig websocket.Config) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/ws/game/:gameId",
		middleware.ValidateGameID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, wsConfig),
	)

	gameRoutes := app.Group("/api/game")
	gameRoutes.Post("/create", gameController.CreateGame)

	byID := gameRoutes.Group("/:gameId", middleware.ValidateGameID())
	byID.Get("/", gameController.GetGameState)
	byID.Delete("/", gameController.DeleteGame)
	byID.Get("/moves", gameController.GetMoves)
	byID.Post("/select", gameController.Select)
	byID.Post("/move", gameController.Move)
	byID.Post("/click", gameController.Click)
	byID.Post("/reset", gameController.Reset)
}
