package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"postmarket/internal/models"
)

// rejectApp wires the reject route with a fake admin in Locals and no
// database. Reason validation must fail before any store access.
func rejectApp() *fiber.App {
	h := NewAdminHandler(nil, nil)
	app := fiber.New()
	app.Put("/admin/publisher-requests/:id/reject", func(c fiber.Ctx) error {
		c.Locals("user", &models.User{ID: uuid.New(), Role: models.RoleAdmin})
		return h.Reject(c)
	})
	return app
}

func TestReject_RequiresReason(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"no reason field", `{"notes":"checked"}`},
		{"empty reason", `{"reason":""}`},
		{"whitespace reason", `{"reason":"   \t  "}`},
	}

	app := rejectApp()
	id := uuid.New().String()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/admin/publisher-requests/"+id+"/reject", strings.NewReader(tt.body))
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

func TestReject_InvalidID(t *testing.T) {
	app := rejectApp()

	req := httptest.NewRequest("PUT", "/admin/publisher-requests/not-a-uuid/reject", strings.NewReader(`{"reason":"spam"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
