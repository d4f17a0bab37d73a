package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
	"gorm.io/gorm"
)

type MedicationLogRepository struct {
	database *gorm.DB
}

func NewMedicationLogRepository(database *gorm.DB) *MedicationLogRepository {
	return &MedicationLogRepository{database: database}
}

func (repo *MedicationLogRepository) ListByUserDateRange(userID uuid.UUID, fromISO string, toISO string) ([]models.MedicationLog, error) {
	logs := make([]models.MedicationLog, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, fromISO, toISO).
		Order("date ASC, created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *MedicationLogRepository) FindByIDForUser(logID uuid.UUID, userID uuid.UUID) (models.MedicationLog, bool, error) {
	entry := models.MedicationLog{}
	result := repo.database.Where("id = ? AND user_id = ?", logID, userID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.MedicationLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MedicationLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *MedicationLogRepository) FindByMedicationAndDate(medicationID uuid.UUID, dateISO string) (models.MedicationLog, bool, error) {
	entry := models.MedicationLog{}
	result := repo.database.
		Where("medication_id = ? AND date = ?", medicationID, dateISO).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.MedicationLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MedicationLog{}, false, nil
	}
	return entry, true, nil
}

// CreateTaken inserts a taken=true log unless one already exists for the pair.
// created reports whether a row was written. The unique (medication_id, date)
// index decides concurrent first toggles: an insert that loses to another
// writer reports created=false instead of an error.
func (repo *MedicationLogRepository) CreateTaken(entry *models.MedicationLog) (bool, error) {
	if _, found, err := repo.FindByMedicationAndDate(entry.MedicationID, entry.Date); err != nil || found {
		return false, err
	}

	entry.Taken = true
	if err := repo.database.Create(entry).Error; err != nil {
		if _, found, findErr := repo.FindByMedicationAndDate(entry.MedicationID, entry.Date); findErr == nil && found {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (repo *MedicationLogRepository) SetTaken(entry *models.MedicationLog, taken bool, now time.Time) error {
	result := repo.database.Model(&models.MedicationLog{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"taken":      taken,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("medication log not found")
	}
	entry.Taken = taken
	entry.UpdatedAt = now
	return nil
}
