package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"well-formed", "Bearer abc123", "abc123", true},
		{"lowercase scheme", "bearer abc123", "abc123", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"scheme only", "Bearer", "", false},
		{"empty token", "Bearer ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var gotToken string
			var gotOK bool
			app.Get("/", func(c fiber.Ctx) error {
				gotToken, gotOK = bearerToken(c)
				return c.SendString("ok")
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if _, err := app.Test(req); err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}

			if gotOK != tt.ok {
				t.Errorf("bearerToken() ok = %v, want %v", gotOK, tt.ok)
			}
			if gotToken != tt.token {
				t.Errorf("bearerToken() token = %q, want %q", gotToken, tt.token)
			}
		})
	}
}
