package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartLeaderboardScheduler runs RecomputeAll on a fixed interval. The
// returned scheduler is shut down by the caller on exit.
func StartLeaderboardScheduler(svc *LeaderboardService, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := svc.RecomputeAll(ctx); err != nil {
				slog.Error("leaderboard recompute failed", "error", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	slog.Info("leaderboard recompute scheduler started", "interval", interval.String())
	return sched, nil
}
