package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitboard/internal/security"
)

type loginPayload struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	if handler.auth == nil {
		return apiError(c, fiber.StatusNotFound, "Admin login is disabled")
	}

	key := clientKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(key, now) {
		return apiError(c, fiber.StatusTooManyRequests, "Too many login attempts")
	}

	payload := loginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(payload.Password) == "" {
		return apiError(c, fiber.StatusBadRequest, "Password is required")
	}

	token, expiresAt, err := handler.auth.Login(payload.Password)
	if err != nil {
		if errors.Is(err, security.ErrInvalidPassword) {
			handler.loginLimiter.recordFailure(key, now)
			handler.logger.Warn("admin login failed", "ip", key, "request_id", requestID(c))
			return apiError(c, fiber.StatusUnauthorized, "Invalid password")
		}
		return handler.internalError(c, err, "Failed to sign in")
	}

	handler.loginLimiter.clear(key)
	return c.JSON(loginResponse{Token: token, ExpiresAt: expiresAt})
}
