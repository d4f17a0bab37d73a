package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicationLog records whether a medication was taken on a calendar day.
// Date holds the YYYY-MM-DD key; a missing row means not taken.
type MedicationLog struct {
	ID           uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	MedicationID uuid.UUID `gorm:"type:text;not null;uniqueIndex:uidx_medication_logs_medication_date" json:"medication_id"`
	UserID       uuid.UUID `gorm:"type:text;not null;index" json:"user_id"`
	Date         string    `gorm:"type:text;not null;uniqueIndex:uidx_medication_logs_medication_date" json:"date"`
	Taken        bool      `gorm:"not null;default:false" json:"taken"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (entry *MedicationLog) BeforeCreate(_ *gorm.DB) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return nil
}
