package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sparklehq/sparkle-backend/internal/config"
	"github.com/sparklehq/sparkle-backend/internal/database"
	"github.com/sparklehq/sparkle-backend/internal/dto"
	"github.com/sparklehq/sparkle-backend/internal/handlers"
	"github.com/sparklehq/sparkle-backend/internal/models"
	"github.com/sparklehq/sparkle-backend/internal/routes"
	"github.com/sparklehq/sparkle-backend/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		Version:          "test",
	}

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	achievementService := services.NewAchievementService(db)
	sessionService := services.NewSessionService(db, achievementService)
	leaderboardService := services.NewLeaderboardService(db)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(cfg),
		handlers.NewGameHandler(catalogService, sessionService),
		handlers.NewSessionHandler(sessionService),
		handlers.NewAchievementHandler(achievementService),
		handlers.NewLeaderboardHandler(leaderboardService),
	)
	return app, db
}

func httpDo(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func registerUser(t *testing.T, app *fiber.App, username string) dto.AuthResponse {
	t.Helper()
	status, raw := httpDo(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp
}

func TestHealthAndInfo(t *testing.T) {
	app, _ := setupApp(t)

	status, raw := httpDo(t, app, "GET", "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.DB)

	status, raw = httpDo(t, app, "GET", "/api/info", "", nil)
	require.Equal(t, http.StatusOK, status)
	var info dto.InfoResponse
	require.NoError(t, json.Unmarshal(raw, &info))
	require.Equal(t, "Sparkle API", info.Name)
}

func TestRegisterDuplicateReturns400(t *testing.T) {
	app, db := setupApp(t)

	registerUser(t, app, "alice")

	status, raw := httpDo(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusBadRequest, status)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	require.True(t, errResp.Error)
	require.Contains(t, errResp.Message, "already exists")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "alice").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRegisterStorageFailureReturns500(t *testing.T) {
	app, db := setupApp(t)

	// A broken storage layer must come back as a generic 500, never as a
	// 400 carrying driver internals.
	require.NoError(t, db.Migrator().DropTable(&models.User{}))

	status, raw := httpDo(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusInternalServerError, status)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	require.True(t, errResp.Error)
	require.Equal(t, "Internal server error", errResp.Message)
}

func TestLoginAndProtectedProfile(t *testing.T) {
	app, _ := setupApp(t)

	registerUser(t, app, "alice")

	// No token → 401
	status, _ := httpDo(t, app, "GET", "/api/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, raw := httpDo(t, app, "POST", "/api/auth/login", "", dto.LoginRequest{
		Email: "alice@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusOK, status)
	var login dto.AuthResponse
	require.NoError(t, json.Unmarshal(raw, &login))
	require.NotEmpty(t, login.AccessToken)

	status, raw = httpDo(t, app, "GET", "/api/auth/profile", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var profile dto.ProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, 1, profile.Level)
	require.Equal(t, models.ThemeAuto, profile.Theme)

	status, raw = httpDo(t, app, "POST", "/api/auth/login", "", dto.LoginRequest{
		Email: "alice@example.com", Password: "nope-nope-nope",
	})
	require.Equal(t, http.StatusBadRequest, status, string(raw))
}

func TestGamesListAndStats(t *testing.T) {
	app, db := setupApp(t)
	require.NoError(t, database.Seed(db))
	// One inactive game stays hidden
	require.NoError(t, db.Create(&models.Game{
		Title: "Hidden", GameType: models.GameTypeQuiz,
		Difficulty: models.DifficultyEasy, MaxScore: 10, IsActive: false,
	}).Error)

	status, raw := httpDo(t, app, "GET", "/api/games", "", nil)
	require.Equal(t, http.StatusOK, status)
	var listing struct {
		Games []models.Game `json:"games"`
	}
	require.NoError(t, json.Unmarshal(raw, &listing))
	require.NotEmpty(t, listing.Games)
	for _, game := range listing.Games {
		require.True(t, game.IsActive)
	}

	auth := registerUser(t, app, "alice")

	// No completed sessions yet → zero average, no division by zero
	status, raw = httpDo(t, app, "GET", "/api/games/stats", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var stats dto.StatsResponse
	require.NoError(t, json.Unmarshal(raw, &stats))
	require.Equal(t, 0, stats.TotalGames)
	require.Equal(t, 0.0, stats.AverageScore)

	status, _ = httpDo(t, app, "GET", "/api/games/stats", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	app, db := setupApp(t)
	game := models.Game{
		Title: "Quiz Blitz", GameType: models.GameTypeQuiz,
		Difficulty: models.DifficultyEasy, MaxScore: 1000, IsActive: true,
	}
	require.NoError(t, db.Create(&game).Error)

	auth := registerUser(t, app, "alice")

	status, raw := httpDo(t, app, "POST", "/api/sessions/", auth.AccessToken, dto.StartSessionRequest{GameID: game.ID})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var session models.GameSession
	require.NoError(t, json.Unmarshal(raw, &session))
	require.Equal(t, models.SessionStarted, session.Status)

	status, raw = httpDo(t, app, "POST",
		fmt.Sprintf("/api/sessions/%d/complete", session.ID), auth.AccessToken,
		dto.CompleteSessionRequest{Score: 500})
	require.Equal(t, http.StatusOK, status, string(raw))
	var completed models.GameSession
	require.NoError(t, json.Unmarshal(raw, &completed))
	require.Equal(t, models.SessionCompleted, completed.Status)
	require.Equal(t, 500, completed.Score)
	require.NotNil(t, completed.EndTime)

	// Completing again hits the terminal-state guard
	status, _ = httpDo(t, app, "POST",
		fmt.Sprintf("/api/sessions/%d/complete", session.ID), auth.AccessToken,
		dto.CompleteSessionRequest{Score: 999})
	require.Equal(t, http.StatusBadRequest, status)

	// Stats accumulated onto the profile
	status, raw = httpDo(t, app, "GET", "/api/auth/profile", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var profile dto.ProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))
	require.Equal(t, 500, profile.TotalScore)
	require.Equal(t, 1, profile.GamesPlayed)

	// Unknown game → 404
	status, _ = httpDo(t, app, "POST", "/api/sessions/", auth.AccessToken, dto.StartSessionRequest{GameID: 9999})
	require.Equal(t, http.StatusNotFound, status)
}

func TestLeaderboardEndpoint(t *testing.T) {
	app, db := setupApp(t)

	status, raw := httpDo(t, app, "GET", "/api/leaderboard?period=daily", "", nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	status, _ = httpDo(t, app, "GET", "/api/leaderboard?period=hourly", "", nil)
	require.Equal(t, http.StatusBadRequest, status)

	_ = db
}

func TestUpdateSettingsEndpoint(t *testing.T) {
	app, _ := setupApp(t)
	auth := registerUser(t, app, "alice")

	dark := models.ThemeDark
	status, raw := httpDo(t, app, "PUT", "/api/auth/settings", auth.AccessToken,
		dto.UpdateSettingsRequest{Theme: &dark})
	require.Equal(t, http.StatusOK, status, string(raw))
	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(raw, &profile))
	require.Equal(t, models.ThemeDark, profile.Theme)

	bogus := "neon"
	status, _ = httpDo(t, app, "PUT", "/api/auth/settings", auth.AccessToken,
		dto.UpdateSettingsRequest{Theme: &bogus})
	require.Equal(t, http.StatusBadRequest, status)
}
