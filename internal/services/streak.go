package services

import (
	"math"

	"github.com/terraincognita07/habitboard/internal/models"
)

// CurrentStreak counts completed days from Monday onward and stops at the
// first gap. It is anchored to Monday: Tuesday..Saturday done with Monday
// missed is a streak of zero.
func CurrentStreak(progress models.WeeklyProgress) int {
	streak := 0
	for _, day := range models.TrackedWeekdays() {
		if !progress.Completed(day) {
			break
		}
		streak++
	}
	return streak
}

func CompletedDayCount(progress models.WeeklyProgress) int {
	count := 0
	for _, day := range models.TrackedWeekdays() {
		if progress.Completed(day) {
			count++
		}
	}
	return count
}

type Completion struct {
	Completed int
	Target    int
	Rate      int
}

// PersonCompletion reports progress against the person's weekly target.
// For specific days only target days count; for N days per week any
// completed day counts. Rate is a rounded percentage capped at 100.
func PersonCompletion(person models.Person) Completion {
	completion := Completion{}
	switch person.TargetType {
	case models.TargetDaysPerWeek:
		completion.Completed = CompletedDayCount(person.WeeklyProgress)
		completion.Target = person.TargetCount
		if completion.Target <= 0 {
			completion.Target = models.DefaultTargetCount
		}
	default:
		seen := make(map[models.Weekday]struct{}, len(person.TargetDays))
		for _, day := range person.TargetDays {
			if _, duplicate := seen[day]; duplicate {
				continue
			}
			seen[day] = struct{}{}
			completion.Target++
			if person.WeeklyProgress.Completed(day) {
				completion.Completed++
			}
		}
	}

	completion.Rate = percentage(min(completion.Completed, completion.Target), completion.Target)
	return completion
}

func percentage(part int, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
