package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitboard/internal/services"
)

const invalidInputMessage = "Invalid input"

var errInvalidIDParam = errors.New("invalid id parameter")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// validationError reports a 400 with the field-level detail taken from err.
func validationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": invalidInputMessage,
		"errors":  validationDetail(err),
	})
}

func validationDetail(err error) string {
	detail := err.Error()
	prefix := services.ErrInvalidInput.Error() + ": "
	return strings.TrimPrefix(detail, prefix)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidIDParam
	}
	return uint(id), nil
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
