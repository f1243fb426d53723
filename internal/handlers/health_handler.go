package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sparklehq/sparkle-backend/internal/config"
	"github.com/sparklehq/sparkle-backend/internal/database"
	"github.com/sparklehq/sparkle-backend/internal/dto"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Version:   h.cfg.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}

func (h *HealthHandler) Info(c *fiber.Ctx) error {
	return c.JSON(dto.InfoResponse{
		Name:        "Sparkle API",
		Version:     h.cfg.Version,
		Description: "Backend API for the Sparkle gaming platform",
	})
}
