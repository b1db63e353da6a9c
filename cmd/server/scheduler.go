package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/notify"
)

// sweepScheduler runs the due-task reminder sweep once a day at the
// configured local time.
type sweepScheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// newSweepScheduler registers the daily sweep entry at the given HH:MM
// time string.
func newSweepScheduler(
	sweepTime string,
	dispatcher *notify.Dispatcher,
	logger *slog.Logger,
) (*sweepScheduler, error) {
	spec, err := buildDailySpec(sweepTime)
	if err != nil {
		return nil, err
	}

	s := &sweepScheduler{
		cron:   cron.New(cron.WithLocation(time.Local)),
		logger: logger.With("component", "sweep_scheduler"),
	}

	_, err = s.cron.AddFunc(spec, func() {
		today := time.Now().Format(domain.DueDateLayout)
		report, err := dispatcher.DispatchDueReminders(context.Background(), today)
		if err != nil {
			s.logger.Error("scheduled reminder sweep failed", "error", err, "due_date", today)
			return
		}
		s.logger.Info("scheduled reminder sweep finished",
			"due_date", report.DueDate,
			"tasks_due", report.TasksDue,
			"emails_sent", report.EmailsSent,
			"pushes_sent", report.PushesSent,
			"failures", report.Failures)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}

	return s, nil
}

// Start begins the schedule in its own goroutine.
func (s *sweepScheduler) Start() {
	s.cron.Start()
	s.logger.Info("Daily reminder sweep scheduled")
}

// Stop halts the schedule and waits for an in-flight sweep to finish.
func (s *sweepScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Sweep scheduler stopped")
}

// buildDailySpec converts an HH:MM time string to a daily cron spec.
func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid sweep time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in sweep time %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in sweep time %q", timeStr)
	}
	// cron format: minute hour dom month dow
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
