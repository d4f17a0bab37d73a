package api

import (
	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
)

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type medicationPayload struct {
	Name string `json:"name" form:"name"`
}

type togglePayload struct {
	MedicationID string `json:"medication_id" form:"medication_id"`
	Date         string `json:"date" form:"date"`
	LogID        string `json:"log_id,omitempty" form:"log_id"`
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type sessionResponse struct {
	OK    bool         `json:"ok"`
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type weekDayResponse struct {
	Weekday string `json:"weekday"`
	Day     int    `json:"day"`
	Date    string `json:"date"`
}

type weekResponse struct {
	WeekStart   string                 `json:"week_start"`
	WeekEnd     string                 `json:"week_end"`
	Label       string                 `json:"label"`
	Days        []weekDayResponse      `json:"days"`
	Medications []models.Medication    `json:"medications"`
	Logs        []models.MedicationLog `json:"logs"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email}
}
