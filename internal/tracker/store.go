package tracker

import (
	"context"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
)

// Store is the attendance store as seen by the controller. Every call is
// scoped to the signed-in user by the implementation.
type Store interface {
	ListMedications(ctx context.Context) ([]models.Medication, error)
	ListLogs(ctx context.Context, fromISO string, toISO string) ([]models.MedicationLog, error)
	// UpsertToggle flips existing when it is non-nil, otherwise records the
	// first taken=true log for the pair.
	UpsertToggle(ctx context.Context, medicationID uuid.UUID, dateISO string, existing *models.MedicationLog) error
	CreateMedication(ctx context.Context, name string) error
	RenameMedication(ctx context.Context, medicationID uuid.UUID, name string) error
	DeleteMedication(ctx context.Context, medicationID uuid.UUID) error
}

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session supplies the signed-in identity. CurrentUser returns nil without an
// error when nobody is signed in.
type Session interface {
	CurrentUser(ctx context.Context) (*User, error)
	SignOut(ctx context.Context) error
}

type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (fn ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return fn(ctx, prompt)
}

// StaticSession is a Session with a fixed user, used when the controller runs
// in the same process as the store.
type StaticSession struct {
	User *User
}

func (session *StaticSession) CurrentUser(context.Context) (*User, error) {
	if session.User == nil {
		return nil, nil
	}
	user := *session.User
	return &user, nil
}

func (session *StaticSession) SignOut(context.Context) error {
	session.User = nil
	return nil
}
