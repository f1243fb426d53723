package models

import "time"

// Achievement types. The type selects which observed metric is compared
// against RequirementValue.
const (
	AchievementScore      = "score"
	AchievementStreak     = "streak"
	AchievementCompletion = "completion"
	AchievementTime       = "time"
)

// Achievement is a rule that permanently unlocks a reward once an observed
// metric reaches RequirementValue.
type Achievement struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"size:200;not null" json:"name"`
	Description      string `gorm:"type:text" json:"description"`
	AchievementType  string `gorm:"size:20;not null;index" json:"achievement_type"`
	Icon             string `gorm:"size:50;not null;default:'trophy'" json:"icon"`
	RequirementValue int    `gorm:"not null" json:"requirement_value"`
	Points           int    `gorm:"not null;default:10" json:"points"`
	// No default tag, same reason as Game.IsActive.
	IsActive bool `gorm:"not null" json:"is_active"`
}

// UserAchievement records an unlocked achievement. Rows are immutable and
// unique per (user, achievement).
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"not null" json:"earned_at"`

	User        User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE" json:"achievement"`
}

func ValidAchievementType(s string) bool {
	switch s {
	case AchievementScore, AchievementStreak, AchievementCompletion, AchievementTime:
		return true
	}
	return false
}
