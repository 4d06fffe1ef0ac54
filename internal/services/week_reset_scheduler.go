package services

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type WeekResetter interface {
	ResetWeek(ctx context.Context) (int, error)
}

// WeekResetScheduler clears weekly progress every Monday at midnight in the
// configured location.
type WeekResetScheduler struct {
	resetter WeekResetter
	location *time.Location
	logger   *log.Logger
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

func NewWeekResetScheduler(resetter WeekResetter, location *time.Location, logger *log.Logger) *WeekResetScheduler {
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WeekResetScheduler{
		resetter: resetter,
		location: location,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}
}

// Start runs the schedule in a goroutine until ctx is cancelled. The returned
// channel is closed once the goroutine exits.
func (scheduler *WeekResetScheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.run(ctx)
	}()
	return done
}

func (scheduler *WeekResetScheduler) run(ctx context.Context) {
	for {
		next := NextWeekStart(scheduler.now(), scheduler.location)
		wait := next.Sub(scheduler.now())
		scheduler.logger.Debug("weekly reset scheduled", "at", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			return
		case <-scheduler.after(wait):
		}

		reset, err := scheduler.resetter.ResetWeek(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			scheduler.logger.Error("weekly reset failed", "err", err, "reset", reset)
			continue
		}
		scheduler.logger.Info("weekly progress reset", "people", reset)
	}
}

// NextWeekStart returns the first Monday 00:00 in location strictly after now.
func NextWeekStart(now time.Time, location *time.Location) time.Time {
	local := now.In(location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	daysUntilMonday := (int(time.Monday) - int(midnight.Weekday()) + 7) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}
	return midnight.AddDate(0, 0, daysUntilMonday)
}
