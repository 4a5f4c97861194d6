package serviceimpl

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rsvp-backend/domain/repositories"
	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/logger"
	"rsvp-backend/pkg/utils"
)

const DefaultAdminSessionTTL = 7 * 24 * time.Hour

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration

	// PasswordHash is a bcrypt hash and wins over the plain Password.
	PasswordHash string
	Password     string
}

type AuthServiceImpl struct {
	config      AuthConfig
	revocations repositories.SessionRevocationStore
	now         func() time.Time
}

// NewAuthService builds the admin gate. revocations may be nil, in which case
// logout only clears the client cookie.
func NewAuthService(config AuthConfig, revocations repositories.SessionRevocationStore) services.AuthService {
	if config.TokenTTL <= 0 {
		config.TokenTTL = DefaultAdminSessionTTL
	}
	return &AuthServiceImpl{
		config:      config,
		revocations: revocations,
		now:         time.Now,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, password string) (string, *services.AdminContext, error) {
	if !s.checkPassword(password) {
		logger.Warn(logger.CategoryAuth, "admin_login_failed", "Admin password rejected", nil)
		return "", nil, services.ErrUnauthorized
	}

	admin := &services.AdminContext{
		SessionID: uuid.New().String(),
		IssuedAt:  s.now().Truncate(time.Second),
	}
	admin.ExpiresAt = admin.IssuedAt.Add(s.config.TokenTTL)

	token, err := utils.GenerateAdminToken(s.config.JWTSecret, admin.SessionID, admin.IssuedAt, s.config.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign admin token: %w", err)
	}

	logger.Auth("admin_login", "Admin session started", map[string]interface{}{
		"session_id": admin.SessionID,
		"expires_at": admin.ExpiresAt,
	})
	return token, admin, nil
}

func (s *AuthServiceImpl) checkPassword(password string) bool {
	if password == "" {
		return false
	}
	if s.config.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(password)) == nil
	}
	if s.config.Password != "" {
		return subtle.ConstantTimeCompare([]byte(s.config.Password), []byte(password)) == 1
	}
	return false
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*services.AdminContext, error) {
	claims, err := utils.ValidateAdminToken(token, s.config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrUnauthorized, err)
	}

	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Without the revocation list a logged-out token could pass, so refuse.
			logger.AuthError("revocation_check_failed", "Failed to check session revocation", err, map[string]interface{}{
				"session_id": claims.ID,
			})
			return nil, fmt.Errorf("%w: session check unavailable", services.ErrUnauthorized)
		}
		if revoked {
			return nil, fmt.Errorf("%w: session has been logged out", services.ErrUnauthorized)
		}
	}

	admin := &services.AdminContext{
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		admin.IssuedAt = claims.IssuedAt.Time
	}
	return admin, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, admin *services.AdminContext) error {
	if admin == nil {
		return services.ErrUnauthorized
	}

	if s.revocations == nil {
		logger.Warn(logger.CategoryAuth, "admin_logout_not_revoked", "No revocation store, token stays valid until expiry", map[string]interface{}{
			"session_id": admin.SessionID,
		})
		return nil
	}

	ttl := int64(math.Ceil(admin.ExpiresAt.Sub(s.now()).Seconds()))
	if err := s.revocations.Revoke(ctx, admin.SessionID, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	logger.Auth("admin_logout", "Admin session revoked", map[string]interface{}{
		"session_id": admin.SessionID,
	})
	return nil
}
