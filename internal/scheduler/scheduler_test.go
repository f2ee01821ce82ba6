package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func noopSync(ctx context.Context, start, end time.Time) error     { return nil }
func noopBacktest(ctx context.Context, start, end time.Time) error { return nil }

func TestStartWithoutJobsFails(t *testing.T) {
	s := NewScheduler(logrus.New())
	if err := s.Start(); err == nil {
		t.Fatal("expected error when starting with no jobs")
	}
}

func TestScheduleAndStart(t *testing.T) {
	s := NewScheduler(logrus.New())

	if err := s.ScheduleHistoricalSync("0 3 * * *", noopSync); err != nil {
		t.Fatalf("failed to schedule sync: %v", err)
	}
	if err := s.ScheduleBacktest("30 4 * * *", noopBacktest); err != nil {
		t.Fatalf("failed to schedule backtest: %v", err)
	}
	if got := s.JobCount(); got != 2 {
		t.Fatalf("expected 2 jobs, got %d", got)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	defer s.Stop()

	if !s.IsRunning() {
		t.Error("expected scheduler to be running")
	}
	if err := s.Start(); err == nil {
		t.Error("expected error on second start")
	}
}

func TestScheduleWhileRunningFails(t *testing.T) {
	s := NewScheduler(logrus.New())
	if err := s.ScheduleHistoricalSync("@hourly", noopSync); err != nil {
		t.Fatalf("failed to schedule sync: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	defer s.Stop()

	if err := s.ScheduleBacktest("@daily", noopBacktest); err == nil {
		t.Error("expected error when scheduling while running")
	}
}

func TestInvalidCronExpression(t *testing.T) {
	s := NewScheduler(logrus.New())
	if err := s.ScheduleHistoricalSync("not a cron expr", noopSync); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
	if got := s.JobCount(); got != 0 {
		t.Errorf("expected 0 jobs after failed schedule, got %d", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := NewScheduler(logrus.New())
	if err := s.ScheduleBacktest("@daily", noopBacktest); err != nil {
		t.Fatalf("failed to schedule backtest: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("expected scheduler to be stopped")
	}
	s.Stop()
}
