package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sparklehq/sparkle-backend/internal/dto"
	"github.com/sparklehq/sparkle-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("session belongs to another user")
	ErrSessionFinished = errors.New("session already completed or abandoned")
)

type SessionService struct {
	db           *gorm.DB
	achievements *AchievementService
}

func NewSessionService(db *gorm.DB, achievements *AchievementService) *SessionService {
	return &SessionService{db: db, achievements: achievements}
}

// Start creates a session in the started state for an active game.
func (s *SessionService) Start(userID, gameID uint) (*models.GameSession, error) {
	var game models.Game
	if err := s.db.Where("is_active = ?", true).First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	session := models.GameSession{
		UserID:    userID,
		GameID:    game.ID,
		Status:    models.SessionStarted,
		StartTime: time.Now(),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

// Complete finishes a started session, records the score and accumulates
// the user's stats plus any newly met achievements in one transaction.
// The status flip is a conditional update keyed on the started state, so
// if two completions race exactly one wins and the other fails the
// terminal-state check.
func (s *SessionService) Complete(userID, sessionID uint, score int) (*models.GameSession, error) {
	var session models.GameSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.UserID != userID {
			return ErrNotSessionOwner
		}

		now := time.Now()
		duration := int(now.Sub(session.StartTime).Seconds())

		res := tx.Model(&models.GameSession{}).
			Where("id = ? AND status = ?", sessionID, models.SessionStarted).
			Updates(map[string]interface{}{
				"status":   models.SessionCompleted,
				"score":    score,
				"end_time": now,
				"duration": duration,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to complete session: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrSessionFinished
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"total_score":  gorm.Expr("total_score + ?", score),
				"games_played": gorm.Expr("games_played + ?", 1),
			}).Error; err != nil {
			return fmt.Errorf("failed to accumulate user stats: %w", err)
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		if _, err := s.achievements.CheckAndAward(tx, userID, models.AchievementScore, score); err != nil {
			return err
		}
		if _, err := s.achievements.CheckAndAward(tx, userID, models.AchievementCompletion, user.GamesPlayed); err != nil {
			return err
		}
		if _, err := s.achievements.CheckAndAward(tx, userID, models.AchievementTime, duration); err != nil {
			return err
		}

		session.Status = models.SessionCompleted
		session.Score = score
		session.EndTime = &now
		session.Duration = &duration
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Abandon finishes a started session without stat accumulation.
func (s *SessionService) Abandon(userID, sessionID uint) (*models.GameSession, error) {
	var session models.GameSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.UserID != userID {
			return ErrNotSessionOwner
		}

		now := time.Now()
		duration := int(now.Sub(session.StartTime).Seconds())

		res := tx.Model(&models.GameSession{}).
			Where("id = ? AND status = ?", sessionID, models.SessionStarted).
			Updates(map[string]interface{}{
				"status":   models.SessionAbandoned,
				"end_time": now,
				"duration": duration,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to abandon session: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrSessionFinished
		}

		session.Status = models.SessionAbandoned
		session.EndTime = &now
		session.Duration = &duration
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListForUser returns the user's sessions, newest first.
func (s *SessionService) ListForUser(userID uint) ([]models.GameSession, error) {
	var sessions []models.GameSession
	if err := s.db.Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Stats aggregates the user's completed sessions. Average is 0 when the
// user has no completed sessions.
func (s *SessionService) Stats(userID uint) (*dto.StatsResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	type aggregate struct {
		TotalGames int
		TotalScore int
	}
	var agg aggregate
	if err := s.db.Model(&models.GameSession{}).
		Select("COUNT(*) AS total_games, COALESCE(SUM(score), 0) AS total_score").
		Where("user_id = ? AND status = ?", userID, models.SessionCompleted).
		Scan(&agg).Error; err != nil {
		return nil, err
	}

	avg := 0.0
	if agg.TotalGames > 0 {
		avg = math.Round(float64(agg.TotalScore)/float64(agg.TotalGames)*100) / 100
	}

	return &dto.StatsResponse{
		TotalGames:       agg.TotalGames,
		TotalScore:       agg.TotalScore,
		AverageScore:     avg,
		Level:            user.Level,
		ExperiencePoints: user.ExperiencePoints,
	}, nil
}
