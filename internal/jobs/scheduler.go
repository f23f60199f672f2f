package jobs

import (
	"context"
	"time"

	"pixel_plaza/internal/logger"
	"pixel_plaza/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the background maintenance jobs: periodic task resets and
// the expired-event sweep. Resets run in UTC, same clock the economy uses.
type Scheduler struct {
	cron   *cron.Cron
	tasks  *service.TaskService
	events *service.EventService
	market *service.MarketService
}

func NewScheduler(tasks *service.TaskService, events *service.EventService, market *service.MarketService) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		tasks:  tasks,
		events: events,
		market: market,
	}
}

// Start registers and launches all jobs.
func (s *Scheduler) Start(ctx context.Context) {
	// Daily task reset at 00:00 UTC
	_, _ = s.cron.AddFunc("0 0 * * *", func() {
		logger.Info("[CRON] daily task reset")
		if err := s.tasks.ResetDaily(ctx); err != nil {
			logger.Error("[CRON] daily task reset failed", "error", err)
		}
	})

	// Weekly task reset, Monday 00:00 UTC
	_, _ = s.cron.AddFunc("0 0 * * 1", func() {
		logger.Info("[CRON] weekly task reset")
		if err := s.tasks.ResetWeekly(ctx); err != nil {
			logger.Error("[CRON] weekly task reset failed", "error", err)
		}
	})

	// Hourly sweep of events past their window
	_, _ = s.cron.AddFunc("0 * * * *", func() {
		if err := s.events.SweepExpired(ctx); err != nil {
			logger.Error("[CRON] event sweep failed", "error", err)
		}
	})

	// Hourly market price snapshot
	_, _ = s.cron.AddFunc("30 * * * *", func() {
		if err := s.market.Tick(ctx); err != nil {
			logger.Error("[CRON] market tick failed", "error", err)
		}
	})

	s.cron.Start()
	logger.Info("scheduler started (UTC)")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("scheduler stopped")
}
