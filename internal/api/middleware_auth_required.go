package api

import "github.com/gofiber/fiber/v2"

// AdminRequired rejects requests without a valid admin token. It is a no-op
// when admin protection is disabled.
func (handler *Handler) AdminRequired(c *fiber.Ctx) error {
	if handler.auth == nil {
		return c.Next()
	}
	if err := handler.auth.Verify(bearerToken(c)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return c.Next()
}
