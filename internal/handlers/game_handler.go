package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sparklehq/sparkle-backend/internal/dto"
	"github.com/sparklehq/sparkle-backend/internal/middleware"
	"github.com/sparklehq/sparkle-backend/internal/services"
)

type GameHandler struct {
	catalog  *services.CatalogService
	sessions *services.SessionService
}

func NewGameHandler(catalog *services.CatalogService, sessions *services.SessionService) *GameHandler {
	return &GameHandler{catalog: catalog, sessions: sessions}
}

func (h *GameHandler) List(c *fiber.Ctx) error {
	games, err := h.catalog.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"games": games})
}

func (h *GameHandler) Stats(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authenticated",
		})
	}

	stats, err := h.sessions.Stats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(stats)
}
