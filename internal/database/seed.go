package database

import (
	"log/slog"

	"github.com/sparklehq/sparkle-backend/internal/models"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

var defaultGames = []models.Game{
	{Title: "History Shooting", Description: "Shoot the right answers to history questions before time runs out.", GameType: models.GameTypeHistory, Difficulty: models.DifficultyMedium, MaxScore: 1000, TimeLimit: intPtr(120), IsActive: true},
	{Title: "Math Shooter", Description: "Rapid-fire arithmetic under pressure.", GameType: models.GameTypeMath, Difficulty: models.DifficultyEasy, MaxScore: 500, TimeLimit: intPtr(90), IsActive: true},
	{Title: "Science Survival", Description: "Survive waves of science trivia.", GameType: models.GameTypeQuiz, Difficulty: models.DifficultyHard, MaxScore: 2000, TimeLimit: intPtr(180), IsActive: true},
	{Title: "Word Builder", Description: "Build as many words as you can from the given letters.", GameType: models.GameTypeWord, Difficulty: models.DifficultyMedium, MaxScore: 800, IsActive: true},
	{Title: "Memory Match", Description: "Classic pair-matching, untimed.", GameType: models.GameTypeMemory, Difficulty: models.DifficultyEasy, MaxScore: 300, IsActive: true},
}

var defaultAchievements = []models.Achievement{
	{Name: "First Steps", Description: "Complete your first game.", AchievementType: models.AchievementCompletion, Icon: "footprints", RequirementValue: 1, Points: 10, IsActive: true},
	{Name: "Regular", Description: "Complete 10 games.", AchievementType: models.AchievementCompletion, Icon: "calendar", RequirementValue: 10, Points: 50, IsActive: true},
	{Name: "Veteran", Description: "Complete 100 games.", AchievementType: models.AchievementCompletion, Icon: "shield", RequirementValue: 100, Points: 250, IsActive: true},
	{Name: "High Scorer", Description: "Score 500 or more in a single game.", AchievementType: models.AchievementScore, Icon: "star", RequirementValue: 500, Points: 25, IsActive: true},
	{Name: "Perfectionist", Description: "Score 1000 or more in a single game.", AchievementType: models.AchievementScore, Icon: "trophy", RequirementValue: 1000, Points: 100, IsActive: true},
	{Name: "Marathon", Description: "Spend 10 minutes in a single session.", AchievementType: models.AchievementTime, Icon: "clock", RequirementValue: 600, Points: 30, IsActive: true},
}

// Seed inserts the default catalog and achievement list into empty tables.
// It never touches tables that already contain rows, so administrative
// edits survive restarts.
func Seed(db *gorm.DB) error {
	var gameCount int64
	if err := db.Model(&models.Game{}).Count(&gameCount).Error; err != nil {
		return err
	}
	if gameCount == 0 {
		if err := db.Create(&defaultGames).Error; err != nil {
			return err
		}
		slog.Info("seeded game catalog", "games", len(defaultGames))
	}

	var achievementCount int64
	if err := db.Model(&models.Achievement{}).Count(&achievementCount).Error; err != nil {
		return err
	}
	if achievementCount == 0 {
		if err := db.Create(&defaultAchievements).Error; err != nil {
			return err
		}
		slog.Info("seeded achievements", "achievements", len(defaultAchievements))
	}

	return nil
}
