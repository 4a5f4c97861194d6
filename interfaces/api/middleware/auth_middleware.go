package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/logger"
	"rsvp-backend/pkg/utils"
)

// AdminCookieName is the HttpOnly cookie carrying the admin session token.
const AdminCookieName = "admin_token"

const adminLocalsKey = "admin"

// AdminOnly rejects requests without a valid admin session and stores the
// admin context for handlers.
func AdminOnly(authService services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Admin session required")
		}

		admin, err := authService.Authenticate(c.UserContext(), token)
		if err != nil {
			logger.Warn(logger.CategoryAuth, "admin_rejected", "Admin token rejected", map[string]interface{}{
				"path":  c.Path(),
				"error": err.Error(),
			})
			return utils.UnauthorizedResponse(c, "Invalid or expired admin session")
		}

		c.Locals(adminLocalsKey, admin)
		return c.Next()
	}
}

// OptionalAdmin sets the admin context when a valid token is present and never rejects.
func OptionalAdmin(authService services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return c.Next()
		}

		if admin, err := authService.Authenticate(c.UserContext(), token); err == nil {
			c.Locals(adminLocalsKey, admin)
		}
		return c.Next()
	}
}

// AdminFromContext returns the admin set by AdminOnly or OptionalAdmin, or nil.
func AdminFromContext(c *fiber.Ctx) *services.AdminContext {
	admin, _ := c.Locals(adminLocalsKey).(*services.AdminContext)
	return admin
}

// TokenFromRequest prefers the Authorization header and falls back to the cookie.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := utils.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization)); token != "" {
		return token
	}
	return strings.TrimSpace(c.Cookies(AdminCookieName))
}
