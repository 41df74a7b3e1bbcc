package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/repository"
	apperrors "github.com/blockbuddy/lead-console/pkg/util"
)

const principalKey = "auth_admin"

// AuthMiddleware validates bearer tokens and loads the admin principal.
type AuthMiddleware struct {
	tokens *TokenManager
	admins repository.AdminRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, admins repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, admins: admins}
}

// Handle enforces admin authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	admin, err := m.admins.GetByID(c.Context(), claims.AdminID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("admin not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, admin)
	return c.Next()
}

// AdminFromContext retrieves the authenticated admin.
func AdminFromContext(c *fiber.Ctx) (*domain.Admin, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	admin, ok := val.(*domain.Admin)
	return admin, ok
}
