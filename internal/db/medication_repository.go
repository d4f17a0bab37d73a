package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
	"gorm.io/gorm"
)

type MedicationRepository struct {
	database *gorm.DB
}

func NewMedicationRepository(database *gorm.DB) *MedicationRepository {
	return &MedicationRepository{database: database}
}

func (repo *MedicationRepository) ListByUser(userID uuid.UUID) ([]models.Medication, error) {
	medications := make([]models.Medication, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

func (repo *MedicationRepository) FindByIDForUser(medicationID uuid.UUID, userID uuid.UUID) (models.Medication, error) {
	medication := models.Medication{}
	if err := repo.database.
		Where("id = ? AND user_id = ?", medicationID, userID).
		First(&medication).Error; err != nil {
		return models.Medication{}, err
	}
	return medication, nil
}

func (repo *MedicationRepository) Create(medication *models.Medication) error {
	return repo.database.Create(medication).Error
}

func (repo *MedicationRepository) Rename(medication *models.Medication, name string, now time.Time) error {
	if err := repo.database.Model(medication).Updates(map[string]any{
		"name":       name,
		"updated_at": now,
	}).Error; err != nil {
		return err
	}
	medication.Name = name
	medication.UpdatedAt = now
	return nil
}

// DeleteWithLogs removes the medication and every log that references it.
func (repo *MedicationRepository) DeleteWithLogs(medication *models.Medication) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("medication_id = ?", medication.ID).Delete(&models.MedicationLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(medication).Error
	})
}
