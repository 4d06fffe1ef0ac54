package services

import (
	"context"
	"fmt"

	"github.com/terraincognita07/habitboard/internal/models"
)

type StatsPeopleReader interface {
	List(ctx context.Context) ([]models.Person, error)
}

type StatsService struct {
	people StatsPeopleReader
}

type StatsOverview struct {
	TotalPeople    int    `json:"totalPeople"`
	ActiveGoals    int    `json:"activeGoals"`
	WeekCompletion string `json:"weekCompletion"`
	StreakRecord   string `json:"streakRecord"`
}

func NewStatsService(people StatsPeopleReader) *StatsService {
	return &StatsService{people: people}
}

func (service *StatsService) Overview(ctx context.Context) (StatsOverview, error) {
	people, err := service.people.List(ctx)
	if err != nil {
		return StatsOverview{}, err
	}
	return BuildStatsOverview(people), nil
}

func BuildStatsOverview(people []models.Person) StatsOverview {
	activeGoals := 0
	completedTotal := 0
	targetTotal := 0
	streakRecord := 0

	for _, person := range people {
		completion := PersonCompletion(person)
		if person.Goal != "" && completion.Target > 0 {
			activeGoals++
		}
		completedTotal += min(completion.Completed, completion.Target)
		targetTotal += completion.Target
		streakRecord = max(streakRecord, person.CurrentStreak)
	}

	return StatsOverview{
		TotalPeople:    len(people),
		ActiveGoals:    activeGoals,
		WeekCompletion: fmt.Sprintf("%d%%", percentage(completedTotal, targetTotal)),
		StreakRecord:   FormatStreakDays(streakRecord),
	}
}

func FormatStreakDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
