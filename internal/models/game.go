package models

import "time"

// Game types.
const (
	GameTypeQuiz     = "quiz"
	GameTypePuzzle   = "puzzle"
	GameTypeMemory   = "memory"
	GameTypeWord     = "word"
	GameTypeMath     = "math"
	GameTypeShooting = "shooting"
	GameTypeHistory  = "history"
)

// Difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Game is a catalog entry describing a playable game. Catalog rows are
// managed administratively, the HTTP surface only reads them.
type Game struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	GameType    string `gorm:"size:20;not null" json:"game_type"`
	Difficulty  string `gorm:"size:20;not null" json:"difficulty"`
	MaxScore    int    `gorm:"not null;default:100" json:"max_score"`
	// TimeLimit is in seconds; nil means untimed.
	TimeLimit *int `json:"time_limit"`
	// No default tag: GORM would drop an explicit false on Create,
	// making games impossible to deactivate at insert time.
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidGameType(s string) bool {
	switch s {
	case GameTypeQuiz, GameTypePuzzle, GameTypeMemory, GameTypeWord,
		GameTypeMath, GameTypeShooting, GameTypeHistory:
		return true
	}
	return false
}

func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
