package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/terraincognita07/habitboard/internal/models"
	"github.com/terraincognita07/habitboard/internal/services"
)

var errTargetDaysNotArray = fmt.Errorf("%w: targetDays must be an array of weekday names", services.ErrInvalidInput)

type createPersonPayload struct {
	Name        string          `json:"name"`
	Goal        string          `json:"goal"`
	Emoji       string          `json:"emoji"`
	TargetType  string          `json:"targetType"`
	TargetDays  json.RawMessage `json:"targetDays"`
	TargetCount *int            `json:"targetCount"`
}

// updatePersonPayload lists the only fields a PATCH may change. Anything else
// in the body, weeklyProgress and currentStreak included, is ignored.
type updatePersonPayload struct {
	Name        *string         `json:"name"`
	Goal        *string         `json:"goal"`
	Emoji       *string         `json:"emoji"`
	TargetType  *string         `json:"targetType"`
	TargetDays  json.RawMessage `json:"targetDays"`
	TargetCount *int            `json:"targetCount"`
}

type progressPayload struct {
	PersonID  *uint  `json:"personId"`
	Day       string `json:"day"`
	Completed *bool  `json:"completed"`
}

type personResponse struct {
	models.Person
	CompletedCount int `json:"completedCount"`
	TargetTotal    int `json:"targetTotal"`
	CompletionRate int `json:"completionRate"`
}

var (
	errPersonIDRequired  = fmt.Errorf("%w: personId is required", services.ErrInvalidInput)
	errCompletedRequired = fmt.Errorf("%w: completed must be a boolean", services.ErrInvalidInput)
)

func (payload createPersonPayload) toInput() services.PersonInput {
	days, err := decodeTargetDays(payload.TargetDays)
	if err != nil {
		// Anything that is not an array falls back to the default schedule.
		days = nil
	}
	return services.PersonInput{
		Name:        payload.Name,
		Goal:        payload.Goal,
		Emoji:       payload.Emoji,
		TargetType:  payload.TargetType,
		TargetDays:  days,
		TargetCount: payload.TargetCount,
	}
}

func (payload updatePersonPayload) toUpdate() (services.PersonUpdate, error) {
	update := services.PersonUpdate{
		Name:        payload.Name,
		Goal:        payload.Goal,
		Emoji:       payload.Emoji,
		TargetType:  payload.TargetType,
		TargetCount: payload.TargetCount,
	}
	if isAbsentJSON(payload.TargetDays) {
		return update, nil
	}

	days, err := decodeTargetDays(payload.TargetDays)
	if err != nil {
		return services.PersonUpdate{}, err
	}
	update.TargetDays = &days
	return update, nil
}

// validate checks shape only. An id that matches nobody, zero included, is
// left for the store to answer with not found.
func (payload progressPayload) validate() error {
	if payload.PersonID == nil {
		return errPersonIDRequired
	}
	if payload.Completed == nil {
		return errCompletedRequired
	}
	if _, ok := models.ParseWeekday(payload.Day); !ok {
		return services.ErrInvalidWeekday
	}
	return nil
}

// decodeTargetDays returns nil for an absent value and an error for anything
// that is not a JSON array of strings.
func decodeTargetDays(raw json.RawMessage) ([]string, error) {
	if isAbsentJSON(raw) {
		return nil, nil
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, errTargetDaysNotArray
	}

	days := []string{}
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, errTargetDaysNotArray
	}
	return days, nil
}

func isAbsentJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func newPersonResponse(person models.Person) personResponse {
	completion := services.PersonCompletion(person)
	return personResponse{
		Person:         person,
		CompletedCount: completion.Completed,
		TargetTotal:    completion.Target,
		CompletionRate: completion.Rate,
	}
}

func newPeopleResponse(people []models.Person) []personResponse {
	response := make([]personResponse, 0, len(people))
	for _, person := range people {
		response = append(response, newPersonResponse(person))
	}
	return response
}
