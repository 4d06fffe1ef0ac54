package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListPeople(c *fiber.Ctx) error {
	people, err := handler.people.List(c.UserContext())
	if err != nil {
		return handler.personAPIError(c, err)
	}
	return c.JSON(newPeopleResponse(people))
}

func (handler *Handler) CreatePerson(c *fiber.Ctx) error {
	payload := createPersonPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	person, err := handler.people.Create(c.UserContext(), payload.toInput())
	if err != nil {
		return handler.personAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newPersonResponse(person))
}

func (handler *Handler) UpdateProgress(c *fiber.Ctx) error {
	payload := progressPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := payload.validate(); err != nil {
		return validationError(c, err)
	}

	person, err := handler.people.UpdateProgress(c.UserContext(), *payload.PersonID, payload.Day, *payload.Completed)
	if err != nil {
		return handler.personAPIError(c, err)
	}
	return c.JSON(newPersonResponse(person))
}

func (handler *Handler) UpdatePerson(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid person ID")
	}

	payload := updatePersonPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	update, err := payload.toUpdate()
	if err != nil {
		return validationError(c, err)
	}

	person, err := handler.people.UpdatePerson(c.UserContext(), id, update)
	if err != nil {
		return handler.personAPIError(c, err)
	}
	return c.JSON(newPersonResponse(person))
}

func (handler *Handler) DeletePerson(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid person ID")
	}

	if err := handler.people.Delete(c.UserContext(), id); err != nil {
		return handler.personAPIError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
