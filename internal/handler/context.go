package handler

import (
	"errors"
	"log/slog"

	"go-retail-sales/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFrom reads the user info set by the auth middleware
func actorFrom(c *fiber.Ctx) service.Actor {
	return service.Actor{
		ID:    localString(c, "user_id"),
		Name:  localString(c, "user_name"),
		Email: localString(c, "user_email"),
	}
}

func localString(c *fiber.Ctx, key string) string {
	v, _ := c.Locals(key).(string)
	return v
}

// ownerID parses the :user_id route param. RequireOwner has already checked
// that it names the authenticated user.
func ownerID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("user_id"))
}

// recordIDs returns the authenticated user and the :id param
func recordIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := uuid.Parse(localString(c, "user_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, id, nil
}

// writeError maps service errors onto status codes
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInsufficientStock):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrStoreNotFound),
		errors.Is(err, service.ErrSaleNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
