// Package scheduler manages recurring data sync and backtest jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/metrics"
)

// SyncFunc pulls fresh race data for the given date range.
type SyncFunc func(ctx context.Context, startDate, endDate time.Time) error

// BacktestFunc replays the scoring engine over the given date range.
type BacktestFunc func(ctx context.Context, startDate, endDate time.Time) error

// Scheduler manages scheduled sync and backtest jobs
type Scheduler struct {
	cron      *cron.Cron
	logger    *logrus.Logger
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler running in UTC
func NewScheduler(logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger,
		jobIDs: make([]cron.EntryID, 0),
	}
}

// ScheduleHistoricalSync schedules recurring data synchronization.
// Each run covers the trailing seven days.
func (s *Scheduler) ScheduleHistoricalSync(cronExpression string, syncFn SyncFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Hour)
		defer cancel()

		endDate := time.Now().UTC()
		startDate := endDate.Add(-7 * 24 * time.Hour)

		s.logger.WithFields(logrus.Fields{
			"start": startDate.Format("2006-01-02"),
			"end":   endDate.Format("2006-01-02"),
		}).Info("Starting scheduled historical sync")

		if err := syncFn(ctx, startDate, endDate); err != nil {
			s.logger.WithError(err).Error("Scheduled historical sync failed")
			return
		}
		s.logger.Info("Scheduled historical sync completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add sync job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled historical sync job")

	return nil
}

// ScheduleBacktest schedules a recurring backtest over the trailing ninety days.
func (s *Scheduler) ScheduleBacktest(cronExpression string, backtestFn BacktestFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()

		endDate := time.Now().UTC()
		startDate := endDate.Add(-90 * 24 * time.Hour)

		s.logger.WithFields(logrus.Fields{
			"start": startDate.Format("2006-01-02"),
			"end":   endDate.Format("2006-01-02"),
		}).Info("Starting scheduled backtest")

		if err := backtestFn(ctx, startDate, endDate); err != nil {
			s.logger.WithError(err).Error("Scheduled backtest failed")
			return
		}
		s.logger.Info("Scheduled backtest completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add backtest job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled backtest job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	metrics.ActiveScheduledJobs.Set(float64(len(s.jobIDs)))
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	s.isRunning = false
	metrics.ActiveScheduledJobs.Set(0)
	s.logger.Info("Scheduler stopped")
}

// IsRunning reports whether the scheduler has been started.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// JobCount returns the number of registered jobs.
func (s *Scheduler) JobCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobIDs)
}
