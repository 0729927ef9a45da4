package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const (
	msgUnauthorized     = "Unauthorized. Please login as admin."
	msgStoreUnavailable = "Database not initialized. Run `storefront migrate` against the configured database, then retry."
	msgInvalidBody      = "Invalid request body"
)

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"errors": validationErrors(err),
	})
}
