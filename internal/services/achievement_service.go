package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sparklehq/sparkle-backend/internal/models"
	"gorm.io/gorm"
)

// XP needed per level. Level follows accumulated experience: every
// BaseXPPerLevel points of experience is one level above the first.
const BaseXPPerLevel = 100

func levelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/BaseXPPerLevel
}

type AchievementService struct {
	db *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

// List returns all active achievements.
func (s *AchievementService) List() ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := s.db.Where("is_active = ?", true).Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

// ListForUser returns the achievements the user has earned, newest first.
func (s *AchievementService) ListForUser(userID uint) ([]models.UserAchievement, error) {
	var earned []models.UserAchievement
	if err := s.db.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error; err != nil {
		return nil, err
	}
	return earned, nil
}

// CheckAndAward unlocks every active achievement of achievementType whose
// requirement the observed value meets and the user has not yet earned,
// granting its points as experience and recomputing the user's level.
// The unique (user, achievement) index makes repeated calls idempotent.
// Runs on the caller's transaction handle so session completion and award
// commit or roll back together.
func (s *AchievementService) CheckAndAward(tx *gorm.DB, userID uint, achievementType string, observed int) ([]models.Achievement, error) {
	var candidates []models.Achievement
	if err := tx.Where("is_active = ? AND achievement_type = ? AND requirement_value <= ?",
		true, achievementType, observed).
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}

	var awarded []models.Achievement
	earnedPoints := 0
	for _, achievement := range candidates {
		var count int64
		if err := tx.Model(&models.UserAchievement{}).
			Where("user_id = ? AND achievement_id = ?", userID, achievement.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}

		award := models.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			EarnedAt:      time.Now(),
		}
		if err := tx.Create(&award).Error; err != nil {
			// A concurrent request already awarded it; the unique index
			// keeps the pair single, so treat the loss as already-earned.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, fmt.Errorf("failed to create award: %w", err)
		}

		awarded = append(awarded, achievement)
		earnedPoints += achievement.Points
		slog.Info("achievement awarded",
			"user_id", userID, "achievement", achievement.Name, "points", achievement.Points)
	}

	if earnedPoints > 0 {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return nil, err
		}
		xp := user.ExperiencePoints + earnedPoints
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"experience_points": xp,
			"level":             levelForXP(xp),
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to grant experience: %w", err)
		}
	}

	return awarded, nil
}
