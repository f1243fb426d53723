package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sparklehq/sparkle-backend/internal/config"
	"github.com/sparklehq/sparkle-backend/internal/database"
	"github.com/sparklehq/sparkle-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database to avoid cross-test
// interference.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Level:    1,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.UserProfile{
		UserID:       user.ID,
		Theme:        models.ThemeAuto,
		PrivacyLevel: models.PrivacyPublic,
	}).Error)
	return &user
}

func createTestGame(t *testing.T, db *gorm.DB, title string, active bool) *models.Game {
	t.Helper()
	game := models.Game{
		Title:      title,
		GameType:   models.GameTypeQuiz,
		Difficulty: models.DifficultyEasy,
		MaxScore:   1000,
		IsActive:   active,
	}
	require.NoError(t, db.Create(&game).Error)
	return &game
}

// completedSession inserts a completed session directly, with a controlled
// end time for leaderboard window tests.
func completedSession(t *testing.T, db *gorm.DB, userID, gameID uint, score int, end time.Time) {
	t.Helper()
	duration := 60
	session := models.GameSession{
		UserID:    userID,
		GameID:    gameID,
		Score:     score,
		Status:    models.SessionCompleted,
		StartTime: end.Add(-time.Minute),
		EndTime:   &end,
		Duration:  &duration,
	}
	require.NoError(t, db.Create(&session).Error)
}
