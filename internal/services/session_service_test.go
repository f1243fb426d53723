package services

import (
	"testing"

	"github.com/sparklehq/sparkle-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestStartSession(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, NewAchievementService(db))
	user := createTestUser(t, db, "alice")
	game := createTestGame(t, db, "Quiz Blitz", true)
	inactive := createTestGame(t, db, "Retired Game", false)

	// The inactive flag must survive the insert
	var stored models.Game
	require.NoError(t, db.First(&stored, inactive.ID).Error)
	require.False(t, stored.IsActive)

	session, err := svc.Start(user.ID, game.ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionStarted, session.Status)
	require.False(t, session.StartTime.IsZero())
	require.Nil(t, session.EndTime)
	require.Nil(t, session.Duration)

	_, err = svc.Start(user.ID, 9999)
	require.ErrorIs(t, err, ErrGameNotFound)

	_, err = svc.Start(user.ID, inactive.ID)
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestCompleteAccumulatesStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, NewAchievementService(db))
	user := createTestUser(t, db, "alice")
	game := createTestGame(t, db, "Quiz Blitz", true)

	session, err := svc.Start(user.ID, game.ID)
	require.NoError(t, err)

	completed, err := svc.Complete(user.ID, session.ID, 500)
	require.NoError(t, err)
	require.Equal(t, models.SessionCompleted, completed.Status)
	require.Equal(t, 500, completed.Score)
	require.NotNil(t, completed.EndTime)
	require.NotNil(t, completed.Duration)
	require.GreaterOrEqual(t, *completed.Duration, 0)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, 500, updated.TotalScore)
	require.Equal(t, 1, updated.GamesPlayed)

	// Second completed session keeps accumulating
	session2, err := svc.Start(user.ID, game.ID)
	require.NoError(t, err)
	_, err = svc.Complete(user.ID, session2.ID, 300)
	require.NoError(t, err)

	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, 800, updated.TotalScore)
	require.Equal(t, 2, updated.GamesPlayed)
}

func TestTerminalTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, NewAchievementService(db))
	user := createTestUser(t, db, "alice")
	game := createTestGame(t, db, "Quiz Blitz", true)

	session, err := svc.Start(user.ID, game.ID)
	require.NoError(t, err)
	_, err = svc.Complete(user.ID, session.ID, 100)
	require.NoError(t, err)

	_, err = svc.Complete(user.ID, session.ID, 200)
	require.ErrorIs(t, err, ErrSessionFinished)
	_, err = svc.Abandon(user.ID, session.ID)
	require.ErrorIs(t, err, ErrSessionFinished)

	// The losing calls changed nothing
	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, 100, updated.TotalScore)
	require.Equal(t, 1, updated.GamesPlayed)

	var stored models.GameSession
	require.NoError(t, db.First(&stored, session.ID).Error)
	require.Equal(t, 100, stored.Score)
}

func TestAbandonSkipsStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, NewAchievementService(db))
	user := createTestUser(t, db, "alice")
	game := createTestGame(t, db, "Quiz Blitz", true)

	session, err := svc.Start(user.ID, game.ID)
	require.NoError(t, err)

	abandoned, err := svc.Abandon(user.ID, session.ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionAbandoned, abandoned.Status)
	require.NotNil(t, abandoned.EndTime)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, 0, updated.TotalScore)
	require.Equal(t, 0, updated.GamesPlayed)

	_, err = svc.Complete(user.ID, session.ID, 100)
	require.ErrorIs(t, err, ErrSessionFinished)
}

func TestCompleteOwnershipAndMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, NewAchievementService(db))
	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")
	game := createTestGame(t, db, "Quiz Blitz", true)

	session, err := svc.Start(alice.ID, game.ID)
	require.NoError(t, err)

	_, err = svc.Complete(mallory.ID, session.ID, 999)
	require.ErrorIs(t, err, ErrNotSessionOwner)

	_, err = svc.Complete(alice.ID, 9999, 10)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStatsZeroCompletedSessions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, NewAchievementService(db))
	user := createTestUser(t, db, "alice")
	game := createTestGame(t, db, "Quiz Blitz", true)

	// A started and an abandoned session do not count
	session, err := svc.Start(user.ID, game.ID)
	require.NoError(t, err)
	_, err = svc.Abandon(user.ID, session.ID)
	require.NoError(t, err)
	_, err = svc.Start(user.ID, game.ID)
	require.NoError(t, err)

	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalGames)
	require.Equal(t, 0, stats.TotalScore)
	require.Equal(t, 0.0, stats.AverageScore)
}

func TestStatsAverageRounding(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, NewAchievementService(db))
	user := createTestUser(t, db, "alice")
	game := createTestGame(t, db, "Quiz Blitz", true)

	for _, score := range []int{100, 201} {
		session, err := svc.Start(user.ID, game.ID)
		require.NoError(t, err)
		_, err = svc.Complete(user.ID, session.ID, score)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalGames)
	require.Equal(t, 301, stats.TotalScore)
	require.Equal(t, 150.5, stats.AverageScore)
}
