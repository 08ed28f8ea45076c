package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleWelcome answers the API root.
func HandleWelcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Bienvenidos!",
	})
}

// HandleHealth is a liveness probe.
func HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
