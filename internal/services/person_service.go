package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/habitboard/internal/models"
	"github.com/terraincognita07/habitboard/internal/store"
)

var (
	ErrPersonNotFound     = errors.New("person not found")
	ErrListPeopleFailed   = errors.New("list people failed")
	ErrCreatePersonFailed = errors.New("create person failed")
	ErrUpdatePersonFailed = errors.New("update person failed")
	ErrDeletePersonFailed = errors.New("delete person failed")
)

type PersonService struct {
	people store.PersonStore
}

func NewPersonService(people store.PersonStore) *PersonService {
	return &PersonService{people: people}
}

func (service *PersonService) List(ctx context.Context) ([]models.Person, error) {
	people, err := service.people.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListPeopleFailed, err)
	}
	return people, nil
}

func (service *PersonService) Create(ctx context.Context, input PersonInput) (models.Person, error) {
	person, err := NormalizePersonInput(input)
	if err != nil {
		return models.Person{}, err
	}
	if err := service.people.Create(ctx, &person); err != nil {
		return models.Person{}, fmt.Errorf("%w: %v", ErrCreatePersonFailed, err)
	}
	return person, nil
}

// UpdateProgress marks one weekday as done or not done and recomputes the
// streak. Calling it again with the same arguments changes nothing but
// UpdatedAt.
func (service *PersonService) UpdateProgress(ctx context.Context, personID uint, day string, completed bool) (models.Person, error) {
	weekday, ok := models.ParseWeekday(day)
	if !ok {
		return models.Person{}, ErrInvalidWeekday
	}

	person, err := service.people.Update(ctx, personID, func(person *models.Person) error {
		person.WeeklyProgress.Set(weekday, completed)
		person.CurrentStreak = CurrentStreak(person.WeeklyProgress)
		return nil
	})
	if err != nil {
		return models.Person{}, classifyPersonError(err, ErrUpdatePersonFailed)
	}
	return person, nil
}

func (service *PersonService) UpdatePerson(ctx context.Context, id uint, update PersonUpdate) (models.Person, error) {
	normalized, err := normalizePersonUpdate(update)
	if err != nil {
		return models.Person{}, err
	}

	person, err := service.people.Update(ctx, id, func(person *models.Person) error {
		normalized.apply(person)
		return nil
	})
	if err != nil {
		return models.Person{}, classifyPersonError(err, ErrUpdatePersonFailed)
	}
	return person, nil
}

func (service *PersonService) Delete(ctx context.Context, id uint) error {
	if err := service.people.Delete(ctx, id); err != nil {
		return classifyPersonError(err, ErrDeletePersonFailed)
	}
	return nil
}

// ResetWeek clears every person's weekly progress and streak. People removed
// while the reset runs are skipped.
func (service *PersonService) ResetWeek(ctx context.Context) (int, error) {
	people, err := service.List(ctx)
	if err != nil {
		return 0, err
	}

	reset := 0
	for _, person := range people {
		if err := ctx.Err(); err != nil {
			return reset, err
		}
		_, err := service.people.Update(ctx, person.ID, func(current *models.Person) error {
			current.WeeklyProgress = models.WeeklyProgress{}
			current.CurrentStreak = 0
			return nil
		})
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return reset, fmt.Errorf("%w: reset person %d: %v", ErrUpdatePersonFailed, person.ID, err)
		}
		reset++
	}
	return reset, nil
}

func classifyPersonError(err error, fallback error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrPersonNotFound
	}
	return fmt.Errorf("%w: %v", fallback, err)
}
