package jobs

import (
	"context"
	"time"

	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the background maintenance jobs: purging dead sessions and
// logging the end-of-day booking summary.
type Scheduler struct {
	repo *repository.Repository
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(repo *repository.Repository, log *zap.Logger) *Scheduler {
	return &Scheduler{
		repo: repo,
		cron: cron.New(),
		log:  log.With(zap.String("service", "jobs")),
	}
}

// Start registers the jobs and starts the cron loop in its own goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.cleanSessions); err != nil {
		return err
	}

	// Just before midnight, while the day's bookings are still "today".
	if _, err := s.cron.AddFunc("55 23 * * *", s.logDailyStats); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Background jobs started")

	return nil
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Background jobs stopped")
}

func (s *Scheduler) cleanSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Error("Session cleanup failed", zap.Error(err))
		return
	}

	if deleted > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", deleted))
	}
}

func (s *Scheduler) logDailyStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := utils.Today()

	stats, err := s.repo.Booking.StatsForDate(ctx, today)
	if err != nil {
		s.log.Error("Daily booking stats failed", zap.Error(err))
		return
	}

	fields := []zap.Field{zap.String("date", today.Format(utils.DateLayout))}
	for status, count := range stats {
		fields = append(fields, zap.Int64(string(status), count))
	}

	s.log.Info("Daily booking summary", fields...)
}
