package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/terraincognita07/habitboard/internal/models"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrPersonNameRequired = fmt.Errorf("%w: name is required", ErrInvalidInput)
	ErrPersonNameTooLong  = fmt.Errorf("%w: name is too long", ErrInvalidInput)
	ErrPersonGoalRequired = fmt.Errorf("%w: goal is required", ErrInvalidInput)
	ErrPersonGoalTooLong  = fmt.Errorf("%w: goal is too long", ErrInvalidInput)
	ErrInvalidEmoji       = fmt.Errorf("%w: emoji must be a single glyph", ErrInvalidInput)
	ErrInvalidTargetType  = fmt.Errorf("%w: targetType must be specific_days or days_per_week", ErrInvalidInput)
	ErrInvalidTargetDay   = fmt.Errorf("%w: targetDays may only contain monday through saturday", ErrInvalidInput)
	ErrInvalidTargetCount = fmt.Errorf("%w: targetCount must be between 1 and 6", ErrInvalidInput)
	ErrInvalidWeekday     = fmt.Errorf("%w: day must be monday through saturday", ErrInvalidInput)
)

const (
	maxPersonNameLength = 80
	maxPersonGoalLength = 200
	maxEmojiBytes       = 64
)

// PersonInput is a registration request. Nil TargetDays and TargetCount fall
// back to defaults.
type PersonInput struct {
	Name        string
	Goal        string
	Emoji       string
	TargetType  string
	TargetDays  []string
	TargetCount *int
}

// PersonUpdate enumerates the fields a partial update may touch. Progress and
// streak are deliberately absent.
type PersonUpdate struct {
	Name        *string
	Goal        *string
	Emoji       *string
	TargetType  *string
	TargetDays  *[]string
	TargetCount *int
}

func (update PersonUpdate) IsEmpty() bool {
	return update.Name == nil &&
		update.Goal == nil &&
		update.Emoji == nil &&
		update.TargetType == nil &&
		update.TargetDays == nil &&
		update.TargetCount == nil
}

func NormalizePersonInput(input PersonInput) (models.Person, error) {
	name, err := normalizePersonName(input.Name)
	if err != nil {
		return models.Person{}, err
	}
	goal, err := normalizePersonGoal(input.Goal)
	if err != nil {
		return models.Person{}, err
	}
	emoji, err := normalizeEmoji(input.Emoji)
	if err != nil {
		return models.Person{}, err
	}
	targetType, err := normalizeTargetType(input.TargetType)
	if err != nil {
		return models.Person{}, err
	}

	targetDays := models.TrackedWeekdays()
	if input.TargetDays != nil {
		targetDays, err = NormalizeTargetDays(input.TargetDays)
		if err != nil {
			return models.Person{}, err
		}
	}

	targetCount := models.DefaultTargetCount
	if input.TargetCount != nil {
		if !IsValidTargetCount(*input.TargetCount) {
			return models.Person{}, ErrInvalidTargetCount
		}
		targetCount = *input.TargetCount
	}

	return models.Person{
		Name:           name,
		Goal:           goal,
		Emoji:          emoji,
		TargetType:     targetType,
		TargetDays:     targetDays,
		TargetCount:    targetCount,
		WeeklyProgress: models.WeeklyProgress{},
		CurrentStreak:  0,
	}, nil
}

// normalizedPersonUpdate holds validated values ready to be applied.
type normalizedPersonUpdate struct {
	name        *string
	goal        *string
	emoji       *string
	targetType  *string
	targetDays  []models.Weekday
	hasDays     bool
	targetCount *int
}

func normalizePersonUpdate(update PersonUpdate) (normalizedPersonUpdate, error) {
	normalized := normalizedPersonUpdate{}

	if update.Name != nil {
		name, err := normalizePersonName(*update.Name)
		if err != nil {
			return normalized, err
		}
		normalized.name = &name
	}
	if update.Goal != nil {
		goal, err := normalizePersonGoal(*update.Goal)
		if err != nil {
			return normalized, err
		}
		normalized.goal = &goal
	}
	if update.Emoji != nil {
		emoji, err := normalizeEmoji(*update.Emoji)
		if err != nil {
			return normalized, err
		}
		normalized.emoji = &emoji
	}
	if update.TargetType != nil {
		if strings.TrimSpace(*update.TargetType) == "" {
			return normalized, ErrInvalidTargetType
		}
		targetType, err := normalizeTargetType(*update.TargetType)
		if err != nil {
			return normalized, err
		}
		normalized.targetType = &targetType
	}
	if update.TargetDays != nil {
		days, err := NormalizeTargetDays(*update.TargetDays)
		if err != nil {
			return normalized, err
		}
		normalized.targetDays = days
		normalized.hasDays = true
	}
	if update.TargetCount != nil {
		if !IsValidTargetCount(*update.TargetCount) {
			return normalized, ErrInvalidTargetCount
		}
		count := *update.TargetCount
		normalized.targetCount = &count
	}
	return normalized, nil
}

func (update normalizedPersonUpdate) apply(person *models.Person) {
	if update.name != nil {
		person.Name = *update.name
	}
	if update.goal != nil {
		person.Goal = *update.goal
	}
	if update.emoji != nil {
		person.Emoji = *update.emoji
	}
	if update.targetType != nil {
		person.TargetType = *update.targetType
	}
	if update.hasDays {
		person.TargetDays = update.targetDays
	}
	if update.targetCount != nil {
		person.TargetCount = *update.targetCount
	}
}

// NormalizeTargetDays validates day names and returns them deduplicated in
// Monday..Saturday order.
func NormalizeTargetDays(raw []string) ([]models.Weekday, error) {
	selected := make(map[models.Weekday]struct{}, len(raw))
	for _, value := range raw {
		day, ok := models.ParseWeekday(strings.ToLower(strings.TrimSpace(value)))
		if !ok {
			return nil, ErrInvalidTargetDay
		}
		selected[day] = struct{}{}
	}

	days := make([]models.Weekday, 0, len(selected))
	for _, day := range models.TrackedWeekdays() {
		if _, ok := selected[day]; ok {
			days = append(days, day)
		}
	}
	return days, nil
}

func IsValidTargetCount(count int) bool {
	return count >= models.MinTargetCount && count <= models.MaxTargetCount
}

func IsValidTargetType(targetType string) bool {
	switch targetType {
	case models.TargetSpecificDays, models.TargetDaysPerWeek:
		return true
	default:
		return false
	}
}

func normalizePersonName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrPersonNameRequired
	}
	if len([]rune(name)) > maxPersonNameLength {
		return "", ErrPersonNameTooLong
	}
	return name, nil
}

func normalizePersonGoal(raw string) (string, error) {
	goal := strings.TrimSpace(raw)
	if goal == "" {
		return "", ErrPersonGoalRequired
	}
	if len([]rune(goal)) > maxPersonGoalLength {
		return "", ErrPersonGoalTooLong
	}
	return goal, nil
}

func normalizeEmoji(raw string) (string, error) {
	emoji := strings.TrimSpace(raw)
	if emoji == "" {
		return models.DefaultPersonEmoji, nil
	}
	if len(emoji) > maxEmojiBytes || uniseg.GraphemeClusterCount(emoji) != 1 {
		return "", ErrInvalidEmoji
	}
	return emoji, nil
}

func normalizeTargetType(raw string) (string, error) {
	targetType := strings.TrimSpace(raw)
	if targetType == "" {
		return models.TargetSpecificDays, nil
	}
	if !IsValidTargetType(targetType) {
		return "", ErrInvalidTargetType
	}
	return targetType, nil
}
