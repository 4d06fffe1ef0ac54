package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNextWeekStart(t *testing.T) {
	t.Parallel()

	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	tests := []struct {
		name     string
		now      time.Time
		location *time.Location
		want     time.Time
	}{
		{
			name:     "wednesday rolls to next monday",
			now:      time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC),
			location: time.UTC,
			want:     time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "monday midnight schedules the following week",
			now:      time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
			location: time.UTC,
			want:     time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday evening",
			now:      time.Date(2026, time.March, 8, 23, 59, 0, 0, time.UTC),
			location: time.UTC,
			want:     time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "uses configured location",
			now:      time.Date(2026, time.March, 8, 23, 30, 0, 0, time.UTC),
			location: berlin,
			want:     time.Date(2026, time.March, 16, 0, 0, 0, 0, berlin),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := NextWeekStart(test.now, test.location)
			if !got.Equal(test.want) {
				t.Fatalf("NextWeekStart(%s) = %s, want %s", test.now, got, test.want)
			}
		})
	}
}

type countingResetter struct {
	mu    sync.Mutex
	calls int
	fired chan struct{}
}

func (resetter *countingResetter) ResetWeek(context.Context) (int, error) {
	resetter.mu.Lock()
	resetter.calls++
	resetter.mu.Unlock()
	resetter.fired <- struct{}{}
	return 3, nil
}

func TestWeekResetSchedulerResetsOnTick(t *testing.T) {
	resetter := &countingResetter{fired: make(chan struct{}, 1)}
	scheduler := NewWeekResetScheduler(resetter, time.UTC, log.New(io.Discard))

	ticks := make(chan time.Time)
	var waits []time.Duration
	var waitsMu sync.Mutex
	scheduler.now = func() time.Time { return time.Date(2026, time.March, 8, 23, 0, 0, 0, time.UTC) }
	scheduler.after = func(wait time.Duration) <-chan time.Time {
		waitsMu.Lock()
		waits = append(waits, wait)
		waitsMu.Unlock()
		return ticks
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := scheduler.Start(ctx)

	ticks <- time.Now()
	select {
	case <-resetter.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected reset to run after tick")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	waitsMu.Lock()
	defer waitsMu.Unlock()
	if len(waits) == 0 || waits[0] != time.Hour {
		t.Fatalf("expected first wait of one hour, got %v", waits)
	}
}
