package dto

import "time"

type StartSessionRequest struct {
	GameID uint `json:"game_id"`
}

type CompleteSessionRequest struct {
	Score int `json:"score"`
}

type StatsResponse struct {
	TotalGames       int     `json:"total_games"`
	TotalScore       int     `json:"total_score"`
	AverageScore     float64 `json:"average_score"`
	Level            int     `json:"level"`
	ExperiencePoints int     `json:"experience_points"`
}

// LeaderboardEntry is a leaderboard row joined with display names.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	Username    string    `json:"username"`
	GameTitle   string    `json:"game_title,omitempty"`
	Period      string    `json:"period"`
	TotalScore  int       `json:"total_score"`
	GamesPlayed int       `json:"games_played"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}
