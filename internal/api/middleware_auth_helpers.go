package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
)

type authClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func requestToken(c *fiber.Ctx) (string, error) {
	if token, ok := bearerToken(c); ok {
		return token, nil
	}
	if token := strings.TrimSpace(c.Cookies(AuthCookieName)); token != "" {
		return token, nil
	}
	return "", errors.New("missing auth token")
}

func (handler *Handler) parseToken(tokenValue string) (uuid.UUID, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return uuid.Nil, errors.New("token expired")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, errors.New("invalid token subject")
	}
	return userID, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	tokenValue, err := requestToken(c)
	if err != nil {
		return nil, err
	}
	userID, err := handler.parseToken(tokenValue)
	if err != nil {
		return nil, err
	}

	user, err := handler.authService.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
