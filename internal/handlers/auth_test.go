package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestRegister_Validation(t *testing.T) {
	h := NewAuthHandler(nil, nil, nil)
	app := fiber.New()
	app.Post("/auth/register", h.Register)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"missing fields", `{"email":"a@example.com"}`},
		{"bad email", `{"email":"nope","password":"secret1","name":"A"}`},
		{"short password", `{"email":"a@example.com","password":"abc","name":"A"}`},
		{"admin self-signup", `{"email":"a@example.com","password":"secret1","name":"A","role":"admin"}`},
		{"unknown role", `{"email":"a@example.com","password":"secret1","name":"A","role":"owner"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
			}
		})
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	h := NewAuthHandler(nil, nil, nil)
	app := fiber.New()
	app.Post("/auth/login", h.Login)

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"a@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
