package middleware

import (
	"github.com/bilgisen/fortune-news/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ErrorHandler is the fiber-level error handler for errors that escape the
// route handlers (panics surfaced by recover, routing errors). Route-level
// failures go through the api package's central mapping instead.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": utils.StatusMessage(code),
	})
}
