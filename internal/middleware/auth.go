package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"postmarket/internal/auth"
	"postmarket/internal/db"
	"postmarket/internal/models"
)

// AuthMiddleware authenticates requests via bearer tokens.
type AuthMiddleware struct {
	issuer *auth.TokenIssuer
	db     *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(issuer *auth.TokenIssuer, database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer, db: database}
}

// RequireAuth validates the Authorization header and loads the user into
// Locals("user"). A 401 uniformly means the session has expired and the
// client should clear its credentials.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return unauthorized(c)
	}

	claims, err := m.issuer.Validate(token)
	if err != nil {
		return unauthorized(c)
	}

	user, err := m.db.GetUserByID(c.Context(), claims.UserID)
	if err != nil {
		return unauthorized(c)
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAdmin ensures the authenticated user is an administrator.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return unauthorized(c)
	}
	if !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error":  "admin access required",
		})
	}
	return c.Next()
}

func bearerToken(c fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status": "error",
		"error":  "session expired",
	})
}
