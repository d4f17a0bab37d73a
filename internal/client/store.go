package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
	"github.com/terraincognita07/medtrack/internal/services"
	"github.com/terraincognita07/medtrack/internal/tracker"
)

type medicationRequest struct {
	Name string `json:"name"`
}

type toggleRequest struct {
	MedicationID string `json:"medication_id"`
	Date         string `json:"date"`
	LogID        string `json:"log_id,omitempty"`
}

var _ tracker.Store = (*Client)(nil)

func (client *Client) ListMedications(ctx context.Context) ([]models.Medication, error) {
	medications := make([]models.Medication, 0)
	if err := client.do(ctx, fiber.MethodGet, "/api/medications", nil, &medications); err != nil {
		return nil, err
	}
	return medications, nil
}

func (client *Client) ListLogs(ctx context.Context, fromISO string, toISO string) ([]models.MedicationLog, error) {
	query := url.Values{}
	query.Set("from", fromISO)
	query.Set("to", toISO)

	logs := make([]models.MedicationLog, 0)
	if err := client.do(ctx, fiber.MethodGet, "/api/logs?"+query.Encode(), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (client *Client) UpsertToggle(ctx context.Context, medicationID uuid.UUID, dateISO string, existing *models.MedicationLog) error {
	payload := toggleRequest{MedicationID: medicationID.String(), Date: dateISO}
	if existing != nil {
		payload.LogID = existing.ID.String()
	}
	return client.do(ctx, fiber.MethodPost, "/api/logs/toggle", payload, nil)
}

func (client *Client) CreateMedication(ctx context.Context, name string) error {
	normalized, err := services.NormalizeMedicationName(name)
	if err != nil {
		return err
	}
	return client.do(ctx, fiber.MethodPost, "/api/medications", medicationRequest{Name: normalized}, nil)
}

func (client *Client) RenameMedication(ctx context.Context, medicationID uuid.UUID, name string) error {
	normalized, err := services.NormalizeMedicationName(name)
	if err != nil {
		return err
	}
	return client.do(ctx, fiber.MethodPatch, medicationPath(medicationID), medicationRequest{Name: normalized}, nil)
}

func (client *Client) DeleteMedication(ctx context.Context, medicationID uuid.UUID) error {
	return client.do(ctx, fiber.MethodDelete, medicationPath(medicationID), nil, nil)
}

func medicationPath(medicationID uuid.UUID) string {
	return fmt.Sprintf("/api/medications/%s", medicationID)
}
