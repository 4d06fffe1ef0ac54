package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitboard/internal/models"
	"github.com/terraincognita07/habitboard/internal/services"
)

type announcementPayload struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	IsImportant bool   `json:"isImportant"`
}

func (handler *Handler) ListAnnouncements(c *fiber.Ctx) error {
	announcements, err := handler.announcements.List(c.UserContext())
	if err != nil {
		return handler.announcementAPIError(c, err)
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}
	return c.JSON(announcements)
}

func (handler *Handler) CreateAnnouncement(c *fiber.Ctx) error {
	payload := announcementPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	announcement, err := handler.announcements.Create(c.UserContext(), services.AnnouncementInput{
		Title:       payload.Title,
		Content:     payload.Content,
		Author:      payload.Author,
		IsImportant: payload.IsImportant,
	})
	if err != nil {
		return handler.announcementAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(announcement)
}

func (handler *Handler) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid announcement ID")
	}

	if err := handler.announcements.Delete(c.UserContext(), id); err != nil {
		return handler.announcementAPIError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
