package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medtrack/internal/models"
)

const (
	AuthCookieName = "medtrack_auth"
	CSRFCookieName = "medtrack_csrf"
	CSRFHeaderName = "X-CSRF-Token"
	contextUserKey = "current_user"
	bearerPrefix   = "Bearer "
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
