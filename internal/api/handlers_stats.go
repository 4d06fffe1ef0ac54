package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetStatsOverview(c *fiber.Ctx) error {
	overview, err := handler.stats.Overview(c.UserContext())
	if err != nil {
		return handler.internalError(c, err, "Failed to fetch stats")
	}
	return c.JSON(overview)
}
