package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"postmarket/internal/auth"
	"postmarket/internal/db"
	"postmarket/internal/email"
	"postmarket/internal/models"
	"postmarket/internal/validation"
)

const resetTokenTTL = time.Hour

// AuthHandler handles registration, login and password reset.
type AuthHandler struct {
	db       *db.DB
	issuer   *auth.TokenIssuer
	notifier *email.Notifier
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(database *db.DB, issuer *auth.TokenIssuer, notifier *email.Notifier) *AuthHandler {
	return &AuthHandler{db: database, issuer: issuer, notifier: notifier}
}

// Register creates a new account and returns a bearer token.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Email == "" || body.Password == "" || body.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "email, password and name are required")
	}
	if !validation.ValidateEmail(body.Email) {
		return jsonError(c, fiber.StatusBadRequest, "invalid email address")
	}
	if len(body.Password) < 6 {
		return jsonError(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	// Admin accounts are provisioned out of band, not via self-signup.
	switch body.Role {
	case "", models.RolePublisher, models.RoleAdvertiser:
	default:
		return jsonError(c, fiber.StatusBadRequest, "invalid role")
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	user := &models.User{
		Email:        body.Email,
		PasswordHash: hash,
		Name:         body.Name,
		Role:         body.Role,
	}
	if err := h.db.CreateUser(c.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return jsonError(c, fiber.StatusConflict, err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	token, err := h.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return jsonSuccess(c, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Email == "" || body.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.db.GetUserByEmail(c.Context(), body.Email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to log in")
	}

	if !auth.CheckPassword(user.PasswordHash, body.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := h.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return jsonSuccess(c, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// ForgotPassword issues a reset token and emails it. The response is the
// same whether or not the address has an account.
func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Email == "" {
		return jsonError(c, fiber.StatusBadRequest, "email is required")
	}

	accepted := jsonSuccess(c, fiber.Map{
		"message": "if an account exists for this email, a reset link has been sent",
	})

	user, err := h.db.GetUserByEmail(c.Context(), body.Email)
	if err != nil {
		return accepted
	}

	token, err := auth.NewResetToken()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create reset token")
	}

	if err := h.db.CreatePasswordResetToken(c.Context(), token, user.ID, time.Now().Add(resetTokenTTL)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create reset token")
	}

	if h.notifier != nil {
		h.notifier.SendPasswordReset(user.Email, token)
	}

	return accepted
}

// ResetPassword consumes a reset token and sets a new password.
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Token == "" || body.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "token and password are required")
	}
	if len(body.Password) < 6 {
		return jsonError(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	userID, err := h.db.ConsumePasswordResetToken(c.Context(), body.Token)
	if err != nil {
		if errors.Is(err, db.ErrResetTokenInvalid) {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	if err := h.db.UpdateUserPassword(c.Context(), userID, hash); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	return jsonSuccess(c, fiber.Map{
		"message": "password updated, you can now log in",
	})
}

// Profile returns the authenticated user.
func (h *AuthHandler) Profile(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return jsonSuccess(c, user)
}
