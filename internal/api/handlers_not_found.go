package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "Not found")
}

// ErrorHandler renders errors that escape the handlers, unmatched methods and
// recovered panics included, in the same JSON shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apiError(c, fiberErr.Code, fiberErr.Message)
	}
	return apiError(c, fiber.StatusInternalServerError, "Internal server error")
}
