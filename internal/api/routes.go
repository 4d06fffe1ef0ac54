package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)

	people := api.Group("/people")
	people.Get("", handler.ListPeople)
	people.Post("", handler.AdminRequired, handler.CreatePerson)
	// Registered before /:id so "progress" is never taken for an id.
	people.Patch("/progress", handler.AdminRequired, handler.UpdateProgress)
	people.Patch("/:id", handler.AdminRequired, handler.UpdatePerson)
	people.Delete("/:id", handler.AdminRequired, handler.DeletePerson)

	announcements := api.Group("/announcements")
	announcements.Get("", handler.ListAnnouncements)
	announcements.Post("", handler.AdminRequired, handler.CreateAnnouncement)
	announcements.Delete("/:id", handler.AdminRequired, handler.DeleteAnnouncement)

	api.Get("/stats", handler.GetStatsOverview)
}
