package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		handler.logger.Debug("rejecting unauthenticated request", "path", c.Path(), "error", err)
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// UsesBearerToken reports whether the request authenticates with an
// Authorization header instead of the session cookie. Such requests cannot be
// forged by a browser, so CSRF checks skip them.
func UsesBearerToken(c *fiber.Ctx) bool {
	_, ok := bearerToken(c)
	return ok
}
