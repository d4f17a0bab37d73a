package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
)

var (
	ErrInvalidLogRange       = errors.New("invalid log range")
	ErrLogRangeTooWide       = errors.New("log range exceeds one week")
	ErrInvalidLogDate        = errors.New("invalid log date")
	ErrMedicationLogNotFound = errors.New("medication log not found")
	ErrLogAlreadyExists      = errors.New("medication log already exists")
	ErrToggleLogFailed       = errors.New("toggle medication log failed")
)

type MedicationLogRepository interface {
	ListByUserDateRange(userID uuid.UUID, fromISO string, toISO string) ([]models.MedicationLog, error)
	FindByIDForUser(logID uuid.UUID, userID uuid.UUID) (models.MedicationLog, bool, error)
	CreateTaken(entry *models.MedicationLog) (bool, error)
	SetTaken(entry *models.MedicationLog, taken bool, now time.Time) error
}

type MedicationLookup interface {
	FindByIDForUser(medicationID uuid.UUID, userID uuid.UUID) (models.Medication, error)
}

type AttendanceService struct {
	logs        MedicationLogRepository
	medications MedicationLookup
	now         func() time.Time
}

func NewAttendanceService(logs MedicationLogRepository, medications MedicationLookup) *AttendanceService {
	return &AttendanceService{
		logs:        logs,
		medications: medications,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ParseLogRange validates an inclusive ISO date range no wider than one week.
func ParseLogRange(fromRaw string, toRaw string) (string, string, error) {
	from, err := ParseISODate(fromRaw, time.UTC)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidLogRange, err)
	}
	to, err := ParseISODate(toRaw, time.UTC)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidLogRange, err)
	}
	if to.Before(from) {
		return "", "", ErrInvalidLogRange
	}
	if to.After(from.AddDate(0, 0, DaysPerWeek-1)) {
		return "", "", ErrLogRangeTooWide
	}
	return ISODate(from), ISODate(to), nil
}

func (service *AttendanceService) ListLogsInRange(userID uuid.UUID, fromRaw string, toRaw string) ([]models.MedicationLog, error) {
	fromISO, toISO, err := ParseLogRange(fromRaw, toRaw)
	if err != nil {
		return nil, err
	}
	return service.logs.ListByUserDateRange(userID, fromISO, toISO)
}

// ToggleLog flips the log identified by existingLogID, or records the first
// taken=true log for the pair when existingLogID is nil.
func (service *AttendanceService) ToggleLog(userID uuid.UUID, medicationID uuid.UUID, dateRaw string, existingLogID *uuid.UUID) (models.MedicationLog, error) {
	date, err := ParseISODate(dateRaw, time.UTC)
	if err != nil {
		return models.MedicationLog{}, fmt.Errorf("%w: %v", ErrInvalidLogDate, err)
	}
	dateISO := ISODate(date)

	if _, err := findOwnedMedication(service.medications, userID, medicationID, ErrToggleLogFailed); err != nil {
		return models.MedicationLog{}, err
	}

	if existingLogID != nil {
		return service.flipExisting(userID, medicationID, dateISO, *existingLogID)
	}

	entry := models.MedicationLog{
		MedicationID: medicationID,
		UserID:       userID,
		Date:         dateISO,
	}
	created, err := service.logs.CreateTaken(&entry)
	if err != nil {
		return models.MedicationLog{}, fmt.Errorf("%w: %v", ErrToggleLogFailed, err)
	}
	if !created {
		return models.MedicationLog{}, ErrLogAlreadyExists
	}
	return entry, nil
}

func (service *AttendanceService) flipExisting(userID uuid.UUID, medicationID uuid.UUID, dateISO string, logID uuid.UUID) (models.MedicationLog, error) {
	entry, found, err := service.logs.FindByIDForUser(logID, userID)
	if err != nil {
		return models.MedicationLog{}, fmt.Errorf("%w: %v", ErrToggleLogFailed, err)
	}
	if !found || entry.MedicationID != medicationID || entry.Date != dateISO {
		return models.MedicationLog{}, ErrMedicationLogNotFound
	}

	if err := service.logs.SetTaken(&entry, !entry.Taken, service.now()); err != nil {
		return models.MedicationLog{}, fmt.Errorf("%w: %v", ErrToggleLogFailed, err)
	}
	return entry, nil
}
