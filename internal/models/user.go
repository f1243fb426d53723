package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User holds identity plus the cumulative gaming stats that session
// completion and achievement awards accumulate into.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email     string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Bio       string `gorm:"size:500" json:"bio"`
	Location  string `gorm:"size:100" json:"location"`

	TotalScore       int `gorm:"not null;default:0" json:"total_score"`
	GamesPlayed      int `gorm:"not null;default:0" json:"games_played"`
	Level            int `gorm:"not null;default:1" json:"level"`
	ExperiencePoints int `gorm:"not null;default:0" json:"experience_points"`

	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Theme preference values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Privacy levels.
const (
	PrivacyPublic  = "public"
	PrivacyFriends = "friends"
	PrivacyPrivate = "private"
)

// UserProfile stores per-user preferences. It is created in the same
// transaction as the User and exists iff the User exists.
type UserProfile struct {
	ID                   uint   `gorm:"primaryKey" json:"-"`
	UserID               uint   `gorm:"not null;uniqueIndex" json:"-"`
	Theme                string `gorm:"size:20;not null;default:'auto'" json:"theme"`
	NotificationsEnabled bool   `gorm:"not null;default:true" json:"notifications_enabled"`
	EmailNotifications   bool   `gorm:"not null;default:true" json:"email_notifications"`
	PrivacyLevel         string `gorm:"size:20;not null;default:'public'" json:"privacy_level"`
}

func ValidTheme(s string) bool {
	switch s {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	}
	return false
}

func ValidPrivacyLevel(s string) bool {
	switch s {
	case PrivacyPublic, PrivacyFriends, PrivacyPrivate:
		return true
	}
	return false
}
