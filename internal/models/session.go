package models

import "time"

// Session statuses. A session starts in SessionStarted and moves exactly
// once to SessionCompleted or SessionAbandoned; both are terminal.
const (
	SessionStarted   = "started"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// GameSession records one play attempt of a user on a game.
type GameSession struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	GameID uint `gorm:"not null;index" json:"game_id"`
	Score  int  `gorm:"not null;default:0" json:"score"`
	Status string `gorm:"size:20;not null;default:'started'" json:"status"`

	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	// Duration is in seconds, set only when EndTime is set.
	Duration *int `json:"duration"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
}

// Terminal reports whether the session lifecycle has finished.
func (s *GameSession) Terminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionAbandoned
}
