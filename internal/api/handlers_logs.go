package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logs, err := handler.attendanceService.ListLogsInRange(user.ID, c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) ToggleLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := togglePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	medicationID, ok := parseUUIDParam(payload.MedicationID)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}

	var existingLogID *uuid.UUID
	if strings.TrimSpace(payload.LogID) != "" {
		logID, ok := parseUUIDParam(payload.LogID)
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "invalid log id")
		}
		existingLogID = &logID
	}

	entry, err := handler.attendanceService.ToggleLog(user.ID, medicationID, payload.Date, existingLogID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to toggle log")
	}
	return c.JSON(entry)
}
