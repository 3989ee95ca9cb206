package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// LocalGameID is the Locals key holding the validated game id.
const LocalGameID = "gameID"

// ValidateGameID rejects requests whose :gameId is not a uuid and stores the
// normalized id in Locals for the handlers.
func ValidateGameID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("gameId")
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Debugw("rejected game id", "gameId", raw, "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		c.Locals(LocalGameID, id.String())
		return c.Next()
	}
}

// GameID returns the id stored by ValidateGameID, falling back to the raw
// route parameter.
func GameID(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalGameID).(string); ok {
		return id
	}
	return c.Params("gameId")
}
