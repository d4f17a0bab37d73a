package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxMedicationNameLength = 120

type Medication struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:text;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (medication *Medication) BeforeCreate(_ *gorm.DB) error {
	if medication.ID == uuid.Nil {
		medication.ID = uuid.New()
	}
	return nil
}
