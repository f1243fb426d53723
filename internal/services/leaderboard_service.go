package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sparklehq/sparkle-backend/internal/dto"
	"github.com/sparklehq/sparkle-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidPeriod = errors.New("invalid leaderboard period")

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// PeriodWindow returns the current aggregation window for a period.
// Windows are UTC; weeks start on Monday. The all_time window runs from
// the Unix epoch to the recompute instant.
func PeriodWindow(period string, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case models.PeriodDaily:
		return midnight, midnight.AddDate(0, 0, 1), nil
	case models.PeriodWeekly:
		offset := (int(midnight.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case models.PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), nil
	case models.PeriodAllTime:
		return time.Unix(0, 0).UTC(), now, nil
	}
	return time.Time{}, time.Time{}, ErrInvalidPeriod
}

// userWindowScore deliberately has no field for the last_completed
// aggregate: it exists only for the ORDER BY, and drivers disagree on
// the Go type a MAX() over a timestamp scans back as.
type userWindowScore struct {
	UserID      uint
	TotalScore  int
	GamesPlayed int
}

// Recompute regenerates the leaderboard snapshot for one (period, window,
// game) scope from completed sessions. Ranking is total score descending;
// ties go to whoever reached their total first (earliest last completed
// session), then to the lower user id. Pass models.OverallGameID to
// aggregate across all games.
func (s *LeaderboardService) Recompute(ctx context.Context, period string, periodStart, periodEnd time.Time, gameID uint) error {
	if !models.ValidPeriod(period) {
		return ErrInvalidPeriod
	}
	if !periodEnd.After(periodStart) {
		return fmt.Errorf("period_end %s not after period_start %s", periodEnd, periodStart)
	}

	db := s.db.WithContext(ctx)

	query := db.Model(&models.GameSession{}).
		Select("user_id, COALESCE(SUM(score), 0) AS total_score, COUNT(*) AS games_played, MAX(end_time) AS last_completed").
		Where("status = ? AND end_time >= ? AND end_time < ?", models.SessionCompleted, periodStart, periodEnd).
		Group("user_id").
		Order("total_score DESC, last_completed ASC, user_id ASC")
	if gameID != models.OverallGameID {
		query = query.Where("game_id = ?", gameID)
	}

	var scores []userWindowScore
	if err := query.Scan(&scores).Error; err != nil {
		return fmt.Errorf("failed to aggregate session scores: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		rankedUsers := make([]uint, 0, len(scores))
		for i, score := range scores {
			snapshot := models.Leaderboard{
				UserID:      score.UserID,
				GameID:      gameID,
				Period:      period,
				TotalScore:  score.TotalScore,
				GamesPlayed: score.GamesPlayed,
				Rank:        i + 1,
				PeriodStart: periodStart,
				PeriodEnd:   periodEnd,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "user_id"}, {Name: "game_id"},
					{Name: "period"}, {Name: "period_start"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"total_score", "games_played", "rank", "period_end", "updated_at",
				}),
			}).Create(&snapshot).Error; err != nil {
				return fmt.Errorf("failed to upsert leaderboard snapshot: %w", err)
			}
			rankedUsers = append(rankedUsers, score.UserID)
		}

		// Rows for users who no longer score in the window are stale
		// snapshots; regeneration removes them.
		scope := tx.Where("game_id = ? AND period = ? AND period_start = ?", gameID, period, periodStart)
		if len(rankedUsers) > 0 {
			scope = scope.Where("user_id NOT IN ?", rankedUsers)
		}
		if err := scope.Delete(&models.Leaderboard{}).Error; err != nil {
			return fmt.Errorf("failed to prune stale snapshots: %w", err)
		}
		return nil
	})
}

// RecomputeAll regenerates every period's current window, overall and per
// active game. This is the batch entry point the scheduler drives.
func (s *LeaderboardService) RecomputeAll(ctx context.Context) error {
	now := time.Now()

	var games []models.Game
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&games).Error; err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	periods := []string{models.PeriodDaily, models.PeriodWeekly, models.PeriodMonthly, models.PeriodAllTime}
	for _, period := range periods {
		start, end, err := PeriodWindow(period, now)
		if err != nil {
			return err
		}

		if err := s.Recompute(ctx, period, start, end, models.OverallGameID); err != nil {
			return fmt.Errorf("recompute %s overall: %w", period, err)
		}
		for _, game := range games {
			if err := s.Recompute(ctx, period, start, end, game.ID); err != nil {
				return fmt.Errorf("recompute %s game %d: %w", period, game.ID, err)
			}
		}
		slog.Info("leaderboard recomputed", "period", period, "games", len(games))
	}

	// Snapshots scoped to a deleted game have no recompute pass left to
	// refresh or remove them.
	if err := s.db.WithContext(ctx).
		Where("game_id <> ? AND game_id NOT IN (SELECT id FROM games)", models.OverallGameID).
		Delete(&models.Leaderboard{}).Error; err != nil {
		return fmt.Errorf("failed to prune snapshots for deleted games: %w", err)
	}
	return nil
}

// List reads the current window's ranking for a period, optionally scoped
// to one game, ordered by rank.
func (s *LeaderboardService) List(period string, gameID uint, limit int) ([]dto.LeaderboardEntry, error) {
	if !models.ValidPeriod(period) {
		return nil, ErrInvalidPeriod
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	start, _, err := PeriodWindow(period, time.Now())
	if err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Leaderboard{}).
		Select("leaderboards.rank, users.username, games.title AS game_title, leaderboards.period, leaderboards.total_score, leaderboards.games_played, leaderboards.period_start, leaderboards.period_end").
		Joins("JOIN users ON users.id = leaderboards.user_id").
		Joins("LEFT JOIN games ON games.id = leaderboards.game_id").
		Where("leaderboards.period = ? AND leaderboards.game_id = ?", period, gameID).
		Order("leaderboards.rank ASC").
		Limit(limit)
	if period != models.PeriodAllTime {
		query = query.Where("leaderboards.period_start = ?", start)
	}

	var entries []dto.LeaderboardEntry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
