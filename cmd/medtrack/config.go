package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/terraincognita07/medtrack/internal/api"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type serverConfig struct {
	Port         string
	DBPath       string
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	CORSOrigin   string
}

func loadServerConfig() (serverConfig, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return serverConfig{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return serverConfig{}, err
	}
	cookieSecure, err := resolveCookieSecure()
	if err != nil {
		return serverConfig{}, err
	}

	return serverConfig{
		Port:         port,
		DBPath:       getEnv("DB_PATH", filepath.Join("data", "medtrack.db")),
		SecretKey:    secretKey,
		Location:     loadLocation(getEnv("TZ", "UTC")),
		CookieSecure: cookieSecure,
		CORSOrigin:   strings.TrimSpace(os.Getenv("CORS_ORIGIN")),
	}, nil
}

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secretKey)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveCookieSecure() (bool, error) {
	raw := getEnv("COOKIE_SECURE", "false")
	secure, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("COOKIE_SECURE must be a boolean, got %q", raw)
	}
	return secure, nil
}

// csrfMiddlewareConfig protects cookie-authenticated requests. Bearer clients
// and requests without a session cookie cannot be forged by a browser.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:" + api.CSRFHeaderName,
		CookieName:     api.CSRFCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		Expiration:     2 * time.Hour,
		Next:           skipCSRF,
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid csrf token"})
		},
	}
}

func skipCSRF(c *fiber.Ctx) bool {
	return api.UsesBearerToken(c) || c.Cookies(api.AuthCookieName) == ""
}

func corsMiddlewareConfig(origin string) cors.Config {
	return cors.Config{
		AllowOrigins:     origin,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + api.CSRFHeaderName,
		AllowCredentials: true,
	}
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
