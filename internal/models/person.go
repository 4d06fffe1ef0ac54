package models

import "time"

const (
	TargetSpecificDays = "specific_days"
	TargetDaysPerWeek  = "days_per_week"
)

const (
	DefaultPersonEmoji = "🔥"
	DefaultTargetCount = 6
	MinTargetCount     = 1
	MaxTargetCount     = 6
)

type Person struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Goal           string         `gorm:"not null" json:"goal"`
	Emoji          string         `gorm:"not null" json:"emoji"`
	TargetType     string         `gorm:"column:target_type;not null;default:specific_days" json:"targetType"`
	TargetDays     []Weekday      `gorm:"column:target_days;serializer:json;not null" json:"targetDays"`
	TargetCount    int            `gorm:"column:target_count;not null;default:6" json:"targetCount"`
	WeeklyProgress WeeklyProgress `gorm:"column:weekly_progress;serializer:json;not null" json:"weeklyProgress"`
	CurrentStreak  int            `gorm:"column:current_streak;not null;default:0" json:"currentStreak"`
	CreatedAt      time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updatedAt"`
}

func (Person) TableName() string {
	return "people"
}
