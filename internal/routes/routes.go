package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sparklehq/sparkle-backend/internal/config"
	"github.com/sparklehq/sparkle-backend/internal/handlers"
	"github.com/sparklehq/sparkle-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	gameHandler *handlers.GameHandler,
	sessionHandler *handlers.SessionHandler,
	achievementHandler *handlers.AchievementHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/info", healthHandler.Info)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes — JWT applied per route so the public ones
	// above stay public.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/profile", middleware.JWTProtected(cfg), authHandler.Profile)
	api.Put("/auth/settings", middleware.JWTProtected(cfg), authHandler.UpdateSettings)

	// Catalog and stats
	api.Get("/games", gameHandler.List)
	api.Get("/games/stats", middleware.JWTProtected(cfg), gameHandler.Stats)

	// Sessions (all protected)
	sessions := api.Group("/sessions", middleware.JWTProtected(cfg))
	sessions.Post("/", sessionHandler.Start)
	sessions.Get("/", sessionHandler.List)
	sessions.Post("/:id/complete", sessionHandler.Complete)
	sessions.Post("/:id/abandon", sessionHandler.Abandon)

	// Achievements
	api.Get("/achievements", achievementHandler.List)
	api.Get("/achievements/mine", middleware.JWTProtected(cfg), achievementHandler.Mine)

	// Leaderboard (public read, recompute runs out of band)
	api.Get("/leaderboard", leaderboardHandler.List)
}
