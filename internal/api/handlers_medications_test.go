package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
)

func createTestMedication(t *testing.T, app *fiber.App, token string, name string) models.Medication {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/medications", medicationPayload{Name: name}, token)
	expectStatus(t, response, http.StatusCreated)

	medication := models.Medication{}
	decodeJSON(t, response, &medication)
	return medication
}

func TestMedicationCRUD(t *testing.T) {
	app, _, _ := newTestApp(t)
	session := registerTestUser(t, app, "patient@example.com")

	first := createTestMedication(t, app, session.Token, "  Aspirin ")
	if first.Name != "Aspirin" || first.UserID != session.User.ID || first.ID == uuid.Nil {
		t.Fatalf("unexpected created medication: %#v", first)
	}
	second := createTestMedication(t, app, session.Token, "Vitamin D")

	renamed := doJSON(t, app, http.MethodPatch, "/api/medications/"+first.ID.String(), medicationPayload{Name: "Aspirin 81mg"}, session.Token)
	expectStatus(t, renamed, http.StatusOK)
	updated := models.Medication{}
	decodeJSON(t, renamed, &updated)
	if updated.Name != "Aspirin 81mg" || updated.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatalf("unexpected renamed medication: %#v", updated)
	}

	listed := doJSON(t, app, http.MethodGet, "/api/medications", nil, session.Token)
	expectStatus(t, listed, http.StatusOK)
	medications := []models.Medication{}
	decodeJSON(t, listed, &medications)
	if len(medications) != 2 || medications[0].ID != first.ID || medications[1].ID != second.ID {
		t.Fatalf("expected medications in creation order, got %#v", medications)
	}

	deleted := doJSON(t, app, http.MethodDelete, "/api/medications/"+first.ID.String(), nil, session.Token)
	expectStatus(t, deleted, http.StatusNoContent)

	listed = doJSON(t, app, http.MethodGet, "/api/medications", nil, session.Token)
	medications = []models.Medication{}
	decodeJSON(t, listed, &medications)
	if len(medications) != 1 || medications[0].ID != second.ID {
		t.Fatalf("expected only the second medication to remain, got %#v", medications)
	}
}

func TestMedicationNameValidation(t *testing.T) {
	app, _, _ := newTestApp(t)
	session := registerTestUser(t, app, "patient@example.com")
	medication := createTestMedication(t, app, session.Token, "Aspirin")

	blank := doJSON(t, app, http.MethodPost, "/api/medications", medicationPayload{Name: "   "}, session.Token)
	expectStatus(t, blank, http.StatusBadRequest)
	if message := readAPIError(t, blank); message != "invalid medication name" {
		t.Fatalf("blank name error = %q", message)
	}

	tooLong := doJSON(t, app, http.MethodPost, "/api/medications", medicationPayload{Name: strings.Repeat("x", models.MaxMedicationNameLength+1)}, session.Token)
	expectStatus(t, tooLong, http.StatusBadRequest)

	renameBlank := doJSON(t, app, http.MethodPatch, "/api/medications/"+medication.ID.String(), medicationPayload{Name: " "}, session.Token)
	expectStatus(t, renameBlank, http.StatusBadRequest)

	listed := doJSON(t, app, http.MethodGet, "/api/medications", nil, session.Token)
	medications := []models.Medication{}
	decodeJSON(t, listed, &medications)
	if len(medications) != 1 || medications[0].Name != "Aspirin" {
		t.Fatalf("expected stored name unchanged, got %#v", medications)
	}
}

func TestMedicationsAreScopedToOwner(t *testing.T) {
	app, _, _ := newTestApp(t)
	owner := registerTestUser(t, app, "owner@example.com")
	stranger := registerTestUser(t, app, "stranger@example.com")
	medication := createTestMedication(t, app, owner.Token, "Private")

	listed := doJSON(t, app, http.MethodGet, "/api/medications", nil, stranger.Token)
	medications := []models.Medication{}
	decodeJSON(t, listed, &medications)
	if len(medications) != 0 {
		t.Fatalf("expected stranger to see no medications, got %#v", medications)
	}

	rename := doJSON(t, app, http.MethodPatch, "/api/medications/"+medication.ID.String(), medicationPayload{Name: "Stolen"}, stranger.Token)
	expectStatus(t, rename, http.StatusNotFound)

	remove := doJSON(t, app, http.MethodDelete, "/api/medications/"+medication.ID.String(), nil, stranger.Token)
	expectStatus(t, remove, http.StatusNotFound)

	invalid := doJSON(t, app, http.MethodDelete, "/api/medications/not-a-uuid", nil, owner.Token)
	expectStatus(t, invalid, http.StatusBadRequest)
}
