package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseUUIDParam(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

type serviceErrorMapping struct {
	target  error
	status  int
	message string
}

var serviceErrorMappings = []serviceErrorMapping{
	{target: services.ErrAuthCredentialsInvalid, status: fiber.StatusBadRequest, message: "invalid input"},
	{target: services.ErrWeakPassword, status: fiber.StatusBadRequest, message: "weak password"},
	{target: services.ErrPasswordTooLong, status: fiber.StatusBadRequest, message: "password too long"},
	{target: services.ErrEmailAlreadyRegistered, status: fiber.StatusConflict, message: "email already exists"},
	{target: services.ErrInvalidCredentials, status: fiber.StatusUnauthorized, message: "invalid credentials"},
	{target: services.ErrInvalidMedicationName, status: fiber.StatusBadRequest, message: "invalid medication name"},
	{target: services.ErrMedicationNotFound, status: fiber.StatusNotFound, message: "medication not found"},
	{target: services.ErrInvalidLogRange, status: fiber.StatusBadRequest, message: "invalid range"},
	{target: services.ErrLogRangeTooWide, status: fiber.StatusBadRequest, message: "range exceeds one week"},
	{target: services.ErrInvalidLogDate, status: fiber.StatusBadRequest, message: "invalid date"},
	{target: services.ErrMedicationLogNotFound, status: fiber.StatusNotFound, message: "medication log not found"},
	{target: services.ErrLogAlreadyExists, status: fiber.StatusConflict, message: "medication log already exists"},
}

// respondServiceError maps known service errors to client errors. Anything
// else is logged and reported as fallback with status 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return apiError(c, mapping.status, mapping.message)
		}
	}
	handler.logger.Error(fallback, "method", c.Method(), "path", c.Path(), "error", err)
	return apiError(c, fiber.StatusInternalServerError, fallback)
}
