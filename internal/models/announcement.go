package models

import "time"

type Announcement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"not null" json:"content"`
	Author      string    `gorm:"not null" json:"author"`
	IsImportant bool      `gorm:"column:is_important;not null;default:false" json:"isImportant"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}
