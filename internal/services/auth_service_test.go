package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubAuthUserRepo struct {
	users []models.User
}

func (stub *stubAuthUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	_, err := stub.FindByNormalizedEmail(email)
	return err == nil, nil
}

func (stub *stubAuthUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubAuthUserRepo) FindByID(userID uuid.UUID) (models.User, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubAuthUserRepo) Create(user *models.User) error {
	user.ID = uuid.New()
	stub.users = append(stub.users, *user)
	return nil
}

func (stub *stubAuthUserRepo) UpdatePasswordHash(userID uuid.UUID, passwordHash string) error {
	for index := range stub.users {
		if stub.users[index].ID == userID {
			stub.users[index].PasswordHash = passwordHash
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestAuthService() (*AuthService, *stubAuthUserRepo) {
	repo := &stubAuthUserRepo{}
	service := NewAuthService(repo)
	service.hashCost = bcrypt.MinCost
	return service, repo
}

func TestRegisterThenAuthenticate(t *testing.T) {
	service, _ := newTestAuthService()

	user, err := service.Register(" Patient@Example.com ", "StrongPass1")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.Email != "patient@example.com" || user.PasswordHash == "StrongPass1" {
		t.Fatalf("unexpected registered user: %#v", user)
	}

	authenticated, err := service.Authenticate("patient@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if authenticated.ID != user.ID {
		t.Fatalf("Authenticate() returned user %s, want %s", authenticated.ID, user.ID)
	}

	found, err := service.FindByID(user.ID)
	if err != nil || found.Email != user.Email {
		t.Fatalf("FindByID() = (%#v, %v)", found, err)
	}
}

func TestRegisterRejectsDuplicateAndWeakInput(t *testing.T) {
	service, _ := newTestAuthService()
	if _, err := service.Register("patient@example.com", "StrongPass1"); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if _, err := service.Register("PATIENT@example.com", "StrongPass1"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	if _, err := service.Register("other@example.com", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := service.Register("not-an-email", "StrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}
}

func TestAuthenticateHidesWhichCredentialFailed(t *testing.T) {
	service, _ := newTestAuthService()
	if _, err := service.Register("patient@example.com", "StrongPass1"); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if _, err := service.Authenticate("patient@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("nobody@example.com", "StrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := service.FindByID(uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestResetPasswordReplacesHash(t *testing.T) {
	service, _ := newTestAuthService()
	if _, err := service.Register("patient@example.com", "StrongPass1"); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if _, err := service.ResetPassword("patient@example.com", "Temporary99"); err != nil {
		t.Fatalf("ResetPassword() unexpected error: %v", err)
	}
	if _, err := service.Authenticate("patient@example.com", "StrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
	if _, err := service.Authenticate("patient@example.com", "Temporary99"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
	if _, err := service.ResetPassword("missing@example.com", "Temporary99"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
