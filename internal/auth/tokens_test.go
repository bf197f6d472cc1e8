package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-long-enough-for-hs256", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "publisher")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() user id = %v, want %v", claims.UserID, userID)
	}
	if claims.Role != "publisher" {
		t.Errorf("Validate() role = %q, want %q", claims.Role, "publisher")
	}
}

func TestValidate_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-long-enough-for-hs256", -time.Minute)

	token, err := issuer.Issue(uuid.New(), "publisher")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := issuer.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate() expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-long-enough-for-hs256", time.Hour)
	other := NewTokenIssuer("a-completely-different-secret-value", time.Hour)

	token, err := issuer.Issue(uuid.New(), "admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := other.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate() with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-long-enough-for-hs256", time.Hour)
	if _, err := issuer.Validate("not.a.token"); err != ErrInvalidToken {
		t.Errorf("Validate() garbage error = %v, want ErrInvalidToken", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
