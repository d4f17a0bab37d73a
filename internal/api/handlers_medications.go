package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListMedications(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	medications, err := handler.medicationService.ListForUser(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch medications")
	}
	return c.JSON(medications)
}

func (handler *Handler) CreateMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := medicationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	medication, err := handler.medicationService.CreateForUser(user.ID, payload.Name)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create medication")
	}
	return c.Status(fiber.StatusCreated).JSON(medication)
}

func (handler *Handler) RenameMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	medicationID, ok := parseUUIDParam(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}

	payload := medicationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	medication, err := handler.medicationService.RenameForUser(user.ID, medicationID, payload.Name)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to rename medication")
	}
	return c.JSON(medication)
}

func (handler *Handler) DeleteMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	medicationID, ok := parseUUIDParam(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}

	if err := handler.medicationService.DeleteForUser(user.ID, medicationID); err != nil {
		return handler.respondServiceError(c, err, "failed to delete medication")
	}
	handler.logger.Info("medication deleted", "user_id", user.ID, "medication_id", medicationID)
	return c.SendStatus(fiber.StatusNoContent)
}
