package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitboard/internal/services"
)

func (handler *Handler) personAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return validationError(c, err)
	case errors.Is(err, services.ErrPersonNotFound):
		return apiError(c, fiber.StatusNotFound, "Person not found")
	case errors.Is(err, services.ErrListPeopleFailed):
		return handler.internalError(c, err, "Failed to fetch people")
	case errors.Is(err, services.ErrCreatePersonFailed):
		return handler.internalError(c, err, "Failed to create person")
	case errors.Is(err, services.ErrDeletePersonFailed):
		return handler.internalError(c, err, "Failed to delete person")
	default:
		return handler.internalError(c, err, "Failed to update person")
	}
}

func (handler *Handler) announcementAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return validationError(c, err)
	case errors.Is(err, services.ErrAnnouncementNotFound):
		return apiError(c, fiber.StatusNotFound, "Announcement not found")
	case errors.Is(err, services.ErrListAnnouncementsFailed):
		return handler.internalError(c, err, "Failed to fetch announcements")
	case errors.Is(err, services.ErrDeleteAnnouncementFailed):
		return handler.internalError(c, err, "Failed to delete announcement")
	default:
		return handler.internalError(c, err, "Failed to create announcement")
	}
}

// internalError logs the cause with the request id and answers with a
// generic message.
func (handler *Handler) internalError(c *fiber.Ctx, err error, message string) error {
	handler.logger.Error(message, "err", err, "request_id", requestID(c), "path", c.Path())
	return apiError(c, fiber.StatusInternalServerError, message)
}
