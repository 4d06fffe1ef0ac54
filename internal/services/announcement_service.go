package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/habitboard/internal/models"
	"github.com/terraincognita07/habitboard/internal/store"
)

var (
	ErrAnnouncementTitleRequired   = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrAnnouncementContentRequired = fmt.Errorf("%w: content is required", ErrInvalidInput)
	ErrAnnouncementAuthorRequired  = fmt.Errorf("%w: author is required", ErrInvalidInput)
	ErrAnnouncementTooLong         = fmt.Errorf("%w: announcement field is too long", ErrInvalidInput)
)

var (
	ErrAnnouncementNotFound     = errors.New("announcement not found")
	ErrListAnnouncementsFailed  = errors.New("list announcements failed")
	ErrCreateAnnouncementFailed = errors.New("create announcement failed")
	ErrDeleteAnnouncementFailed = errors.New("delete announcement failed")
)

const (
	maxAnnouncementTitleLength   = 200
	maxAnnouncementContentLength = 5000
	maxAnnouncementAuthorLength  = 80
)

type AnnouncementInput struct {
	Title       string
	Content     string
	Author      string
	IsImportant bool
}

type AnnouncementService struct {
	announcements store.AnnouncementStore
}

func NewAnnouncementService(announcements store.AnnouncementStore) *AnnouncementService {
	return &AnnouncementService{announcements: announcements}
}

func (service *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	announcements, err := service.announcements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListAnnouncementsFailed, err)
	}
	return announcements, nil
}

func (service *AnnouncementService) Create(ctx context.Context, input AnnouncementInput) (models.Announcement, error) {
	announcement, err := NormalizeAnnouncementInput(input)
	if err != nil {
		return models.Announcement{}, err
	}
	if err := service.announcements.Create(ctx, &announcement); err != nil {
		return models.Announcement{}, fmt.Errorf("%w: %v", ErrCreateAnnouncementFailed, err)
	}
	return announcement, nil
}

func (service *AnnouncementService) Delete(ctx context.Context, id uint) error {
	if err := service.announcements.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("%w: %v", ErrDeleteAnnouncementFailed, err)
	}
	return nil
}

func NormalizeAnnouncementInput(input AnnouncementInput) (models.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	author := strings.TrimSpace(input.Author)

	switch {
	case title == "":
		return models.Announcement{}, ErrAnnouncementTitleRequired
	case content == "":
		return models.Announcement{}, ErrAnnouncementContentRequired
	case author == "":
		return models.Announcement{}, ErrAnnouncementAuthorRequired
	}

	if len([]rune(title)) > maxAnnouncementTitleLength ||
		len([]rune(content)) > maxAnnouncementContentLength ||
		len([]rune(author)) > maxAnnouncementAuthorLength {
		return models.Announcement{}, ErrAnnouncementTooLong
	}

	return models.Announcement{
		Title:       title,
		Content:     content,
		Author:      author,
		IsImportant: input.IsImportant,
	}, nil
}
