package api

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/terraincognita07/medtrack/internal/db"
	"github.com/terraincognita07/medtrack/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	logger       *slog.Logger
	now          func() time.Time
	loginLimiter *attemptLimiter

	authService       *services.AuthService
	medicationService *services.MedicationService
	attendanceService *services.AttendanceService
}

type Config struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	Logger       *slog.Logger
}

func NewHandler(database *gorm.DB, config Config) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}

	location := config.Location
	if location == nil {
		location = time.Local
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:         []byte(config.SecretKey),
		location:          location,
		cookieSecure:      config.CookieSecure,
		logger:            logger,
		now:               time.Now,
		loginLimiter:      newAttemptLimiter(),
		authService:       services.NewAuthService(repositories.Users),
		medicationService: services.NewMedicationService(repositories.Medications),
		attendanceService: services.NewAttendanceService(repositories.MedicationLogs, repositories.Medications),
	}, nil
}
