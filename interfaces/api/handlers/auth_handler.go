package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/dto"
	"rsvp-backend/domain/services"
	"rsvp-backend/interfaces/api/middleware"
	"rsvp-backend/pkg/logger"
	"rsvp-backend/pkg/utils"
)

type AuthHandler struct {
	authService  services.AuthService
	cookieSecure bool
}

func NewAuthHandler(authService services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieSecure: cookieSecure,
	}
}

// Verify handles POST /admin/verify. The token is returned in the body and
// set as an HttpOnly cookie.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.AdminVerifyRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to verify admin")
	}

	token, admin, err := h.authService.Login(c.UserContext(), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			logger.Auth("admin_verify_rejected", "Admin verification failed", map[string]interface{}{
				"ip": c.IP(),
			})
			return utils.UnauthorizedResponse(c, "Invalid password")
		}
		return respondError(c, err, "Failed to verify admin")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  admin.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SuccessResponse(c, "Admin verified", dto.AdminSessionResponse{
		IsAdmin:   true,
		Token:     token,
		ExpiresAt: &admin.ExpiresAt,
	})
}

// Logout handles POST /admin/logout. The cookie is cleared even when the
// caller has no valid session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearCookie(c)

	if admin := middleware.AdminFromContext(c); admin != nil {
		if err := h.authService.Logout(c.UserContext(), admin); err != nil {
			return respondError(c, err, "Failed to log out")
		}
	}

	return utils.SuccessResponse(c, "Logged out successfully", nil)
}

// Session handles GET /admin/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	admin := middleware.AdminFromContext(c)
	if admin == nil {
		return utils.SuccessResponse(c, "", dto.AdminSessionResponse{IsAdmin: false})
	}

	return utils.SuccessResponse(c, "", dto.AdminSessionResponse{
		IsAdmin:   true,
		ExpiresAt: &admin.ExpiresAt,
	})
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
