package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidMedicationName  = errors.New("invalid medication name")
	ErrMedicationNotFound     = errors.New("medication not found")
	ErrCreateMedicationFailed = errors.New("create medication failed")
	ErrRenameMedicationFailed = errors.New("rename medication failed")
	ErrDeleteMedicationFailed = errors.New("delete medication failed")
	ErrLoadMedicationFailed   = errors.New("load medication failed")
)

type MedicationRepository interface {
	ListByUser(userID uuid.UUID) ([]models.Medication, error)
	FindByIDForUser(medicationID uuid.UUID, userID uuid.UUID) (models.Medication, error)
	Create(medication *models.Medication) error
	Rename(medication *models.Medication, name string, now time.Time) error
	DeleteWithLogs(medication *models.Medication) error
}

type MedicationService struct {
	medications MedicationRepository
	now         func() time.Time
}

func NewMedicationService(medications MedicationRepository) *MedicationService {
	return &MedicationService{
		medications: medications,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeMedicationName trims the name and rejects blank or overlong values.
func NormalizeMedicationName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > models.MaxMedicationNameLength {
		return "", ErrInvalidMedicationName
	}
	return name, nil
}

func (service *MedicationService) ListForUser(userID uuid.UUID) ([]models.Medication, error) {
	return service.medications.ListByUser(userID)
}

func (service *MedicationService) FindForUser(userID uuid.UUID, medicationID uuid.UUID) (models.Medication, error) {
	return findOwnedMedication(service.medications, userID, medicationID, ErrLoadMedicationFailed)
}

// findOwnedMedication reports a missing or foreign medication as
// ErrMedicationNotFound and wraps any other lookup error with failure.
func findOwnedMedication(lookup MedicationLookup, userID uuid.UUID, medicationID uuid.UUID, failure error) (models.Medication, error) {
	medication, err := lookup.FindByIDForUser(medicationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Medication{}, ErrMedicationNotFound
		}
		return models.Medication{}, fmt.Errorf("%w: %v", failure, err)
	}
	return medication, nil
}

func (service *MedicationService) CreateForUser(userID uuid.UUID, rawName string) (models.Medication, error) {
	name, err := NormalizeMedicationName(rawName)
	if err != nil {
		return models.Medication{}, err
	}

	now := service.now()
	medication := models.Medication{
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.medications.Create(&medication); err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrCreateMedicationFailed, err)
	}
	return medication, nil
}

func (service *MedicationService) RenameForUser(userID uuid.UUID, medicationID uuid.UUID, rawName string) (models.Medication, error) {
	name, err := NormalizeMedicationName(rawName)
	if err != nil {
		return models.Medication{}, err
	}

	medication, err := findOwnedMedication(service.medications, userID, medicationID, ErrRenameMedicationFailed)
	if err != nil {
		return models.Medication{}, err
	}
	if err := service.medications.Rename(&medication, name, service.now()); err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrRenameMedicationFailed, err)
	}
	return medication, nil
}

func (service *MedicationService) DeleteForUser(userID uuid.UUID, medicationID uuid.UUID) error {
	medication, err := findOwnedMedication(service.medications, userID, medicationID, ErrDeleteMedicationFailed)
	if err != nil {
		return err
	}
	if err := service.medications.DeleteWithLogs(&medication); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteMedicationFailed, err)
	}
	return nil
}
