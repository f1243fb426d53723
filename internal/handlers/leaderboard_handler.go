package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sparklehq/sparkle-backend/internal/dto"
	"github.com/sparklehq/sparkle-backend/internal/models"
	"github.com/sparklehq/sparkle-backend/internal/services"
)

type LeaderboardHandler struct {
	leaderboards *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboards *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboards: leaderboards}
}

func (h *LeaderboardHandler) List(c *fiber.Ctx) error {
	period := c.Query("period", models.PeriodAllTime)

	gameID := models.OverallGameID
	if raw := c.Query("game_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid game_id",
			})
		}
		gameID = uint(parsed)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	entries, err := h.leaderboards.List(period, gameID, limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"leaderboard": entries})
}
