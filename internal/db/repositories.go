package db

import "gorm.io/gorm"

type Repositories struct {
	Users          *UserRepository
	Medications    *MedicationRepository
	MedicationLogs *MedicationLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(database),
		Medications:    NewMedicationRepository(database),
		MedicationLogs: NewMedicationLogRepository(database),
	}
}
