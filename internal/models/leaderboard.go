package models

import "time"

// Leaderboard periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all_time"
)

// OverallGameID marks a leaderboard row that aggregates across all games.
// A real game id keeps the unique index usable for upserts, which a NULL
// column would not (NULLs never conflict in Postgres or SQLite).
const OverallGameID uint = 0

// Leaderboard is a recomputed ranking snapshot for one user within one
// period window, optionally scoped to a single game.
type Leaderboard struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_leaderboard_scope" json:"user_id"`
	GameID      uint   `gorm:"not null;default:0;uniqueIndex:idx_leaderboard_scope" json:"game_id"`
	Period      string `gorm:"size:20;not null;uniqueIndex:idx_leaderboard_scope" json:"period"`
	TotalScore  int    `gorm:"not null;default:0" json:"total_score"`
	GamesPlayed int    `gorm:"not null;default:0" json:"games_played"`
	Rank        int    `gorm:"not null;default:0" json:"rank"`

	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_leaderboard_scope" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null" json:"period_end"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func ValidPeriod(s string) bool {
	switch s {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAllTime:
		return true
	}
	return false
}
