package tracker

import (
	"context"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
	"github.com/terraincognita07/medtrack/internal/services"
)

type MedicationManager interface {
	ListForUser(userID uuid.UUID) ([]models.Medication, error)
	CreateForUser(userID uuid.UUID, name string) (models.Medication, error)
	RenameForUser(userID uuid.UUID, medicationID uuid.UUID, name string) (models.Medication, error)
	DeleteForUser(userID uuid.UUID, medicationID uuid.UUID) error
}

type AttendanceRecorder interface {
	ListLogsInRange(userID uuid.UUID, fromISO string, toISO string) ([]models.MedicationLog, error)
	ToggleLog(userID uuid.UUID, medicationID uuid.UUID, dateISO string, existingLogID *uuid.UUID) (models.MedicationLog, error)
}

// ServiceStore is a Store that calls the services directly for one user,
// without going through the HTTP API.
type ServiceStore struct {
	userID      uuid.UUID
	medications MedicationManager
	attendance  AttendanceRecorder
}

var _ Store = (*ServiceStore)(nil)

func NewServiceStore(userID uuid.UUID, medications MedicationManager, attendance AttendanceRecorder) *ServiceStore {
	return &ServiceStore{
		userID:      userID,
		medications: medications,
		attendance:  attendance,
	}
}

func (store *ServiceStore) ListMedications(ctx context.Context) ([]models.Medication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return store.medications.ListForUser(store.userID)
}

func (store *ServiceStore) ListLogs(ctx context.Context, fromISO string, toISO string) ([]models.MedicationLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return store.attendance.ListLogsInRange(store.userID, fromISO, toISO)
}

func (store *ServiceStore) UpsertToggle(ctx context.Context, medicationID uuid.UUID, dateISO string, existing *models.MedicationLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var existingID *uuid.UUID
	if existing != nil {
		id := existing.ID
		existingID = &id
	}
	_, err := store.attendance.ToggleLog(store.userID, medicationID, dateISO, existingID)
	return err
}

func (store *ServiceStore) CreateMedication(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := store.medications.CreateForUser(store.userID, name)
	return err
}

func (store *ServiceStore) RenameMedication(ctx context.Context, medicationID uuid.UUID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := store.medications.RenameForUser(store.userID, medicationID, name)
	return err
}

func (store *ServiceStore) DeleteMedication(ctx context.Context, medicationID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return store.medications.DeleteForUser(store.userID, medicationID)
}

var (
	_ MedicationManager  = (*services.MedicationService)(nil)
	_ AttendanceRecorder = (*services.AttendanceService)(nil)
)
