package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sparklehq/sparkle-backend/internal/dto"
	"github.com/sparklehq/sparkle-backend/internal/middleware"
	"github.com/sparklehq/sparkle-backend/internal/services"
)

type AchievementHandler struct {
	achievements *services.AchievementService
}

func NewAchievementHandler(achievements *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

func (h *AchievementHandler) List(c *fiber.Ctx) error {
	achievements, err := h.achievements.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"achievements": achievements})
}

func (h *AchievementHandler) Mine(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authenticated",
		})
	}

	earned, err := h.achievements.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"achievements": earned})
}
