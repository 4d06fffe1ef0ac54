package db

import (
	"context"

	"github.com/terraincognita07/habitboard/internal/models"
	"github.com/terraincognita07/habitboard/internal/store"
	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	database *gorm.DB
}

func NewAnnouncementRepository(database *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{database: database}
}

func (repo *AnnouncementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	announcements := make([]models.Announcement, 0)
	if err := repo.database.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

func (repo *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return repo.database.WithContext(ctx).Create(announcement).Error
}

func (repo *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	result := repo.database.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
