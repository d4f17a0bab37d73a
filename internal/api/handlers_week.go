package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medtrack/internal/services"
)

// GetWeek returns the week containing ?date= (today when omitted) with the
// medications and logs needed to draw it.
func (handler *Handler) GetWeek(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	anchor := services.DateAtLocation(handler.now(), handler.location)
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := services.ParseISODate(raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		anchor = parsed
	}
	window := services.NewWeekWindow(anchor)

	medications, err := handler.medicationService.ListForUser(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch medications")
	}
	logs, err := handler.attendanceService.ListLogsInRange(user.ID, window.StartISO(), window.EndISO())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch logs")
	}

	headers := window.DayHeaders()
	days := make([]weekDayResponse, 0, len(headers))
	for _, header := range headers {
		days = append(days, weekDayResponse{Weekday: header.Weekday, Day: header.Day, Date: header.Date})
	}

	return c.JSON(weekResponse{
		WeekStart:   window.StartISO(),
		WeekEnd:     window.EndISO(),
		Label:       window.Label(),
		Days:        days,
		Medications: medications,
		Logs:        logs,
	})
}
