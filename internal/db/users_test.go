package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"postmarket/internal/models"
)

func TestCreateUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := &models.User{
		Email:        "new@example.com",
		PasswordHash: "hash",
		Name:         "New User",
	}
	if err := db.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("CreateUser() did not set ID")
	}
	if user.Role != models.RolePublisher {
		t.Errorf("CreateUser() default role = %q, want %q", user.Role, models.RolePublisher)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	first := &models.User{Email: "dup@example.com", PasswordHash: "hash", Name: "First"}
	if err := db.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	second := &models.User{Email: "dup@example.com", PasswordHash: "hash", Name: "Second"}
	if err := db.CreateUser(ctx, second); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("CreateUser() duplicate error = %v, want ErrDuplicateEmail", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, db, "find@example.com", models.RoleAdvertiser)

	found, err := db.GetUserByEmail(ctx, "find@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if found.Role != models.RoleAdvertiser {
		t.Errorf("GetUserByEmail() role = %q, want %q", found.Role, models.RoleAdvertiser)
	}

	if _, err := db.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByEmail() missing error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	userID := createTestUser(t, db, "pw@example.com", models.RolePublisher)

	if err := db.UpdateUserPassword(ctx, userID, "new-hash"); err != nil {
		t.Fatalf("UpdateUserPassword() error = %v", err)
	}

	user, err := db.GetUserByID(ctx, userID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.PasswordHash != "new-hash" {
		t.Errorf("UpdateUserPassword() hash = %q", user.PasswordHash)
	}

	if err := db.UpdateUserPassword(ctx, uuid.New(), "x"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateUserPassword() unknown user error = %v, want ErrUserNotFound", err)
	}
}

func TestGetAdminEmails(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, db, "admin1@example.com", models.RoleAdmin)
	createTestUser(t, db, "admin2@example.com", models.RoleAdmin)
	createTestUser(t, db, "pub@example.com", models.RolePublisher)

	emails, err := db.GetAdminEmails(ctx)
	if err != nil {
		t.Fatalf("GetAdminEmails() error = %v", err)
	}
	if len(emails) != 2 {
		t.Errorf("GetAdminEmails() returned %d emails, want 2", len(emails))
	}
}

func TestPasswordResetTokens(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	userID := createTestUser(t, db, "reset@example.com", models.RolePublisher)

	if err := db.CreatePasswordResetToken(ctx, "valid-token", userID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreatePasswordResetToken() error = %v", err)
	}

	gotID, err := db.ConsumePasswordResetToken(ctx, "valid-token")
	if err != nil {
		t.Fatalf("ConsumePasswordResetToken() error = %v", err)
	}
	if gotID != userID {
		t.Errorf("ConsumePasswordResetToken() user = %v, want %v", gotID, userID)
	}

	// Tokens are single-use.
	if _, err := db.ConsumePasswordResetToken(ctx, "valid-token"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("ConsumePasswordResetToken() reuse error = %v, want ErrResetTokenInvalid", err)
	}

	// Expired tokens are rejected.
	if err := db.CreatePasswordResetToken(ctx, "expired-token", userID, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("CreatePasswordResetToken() error = %v", err)
	}
	if _, err := db.ConsumePasswordResetToken(ctx, "expired-token"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Errorf("ConsumePasswordResetToken() expired error = %v, want ErrResetTokenInvalid", err)
	}
}
