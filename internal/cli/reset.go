package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/medtrack/internal/db"
	"github.com/terraincognita07/medtrack/internal/security"
	"github.com/terraincognita07/medtrack/internal/services"
)

const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// RunResetPasswordCommand replaces the password of an account directly in the
// database. An empty newPassword generates a temporary one and prints it.
func RunResetPasswordCommand(dbPath string, email string, newPassword string, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return errors.New("a valid email is required")
	}

	generated := newPassword == ""
	if generated {
		temporaryPassword, err := generateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
		newPassword = temporaryPassword
	} else if err := services.ValidatePasswordStrength(newPassword); err != nil {
		return fmt.Errorf("password must be 8-72 bytes with upper, lower and digit characters: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	authService := services.NewAuthService(db.NewRepositories(database).Users)
	if _, err := authService.ResetPassword(normalizedEmail, newPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", newPassword)
	}
	return nil
}

// generateTemporaryPassword returns a password that satisfies the strength
// policy, so the user can sign in and keep it if they want.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for {
		password, err := security.RandomString(length, temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
}
