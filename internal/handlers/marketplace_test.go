package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v3"

	"postmarket/internal/models"
	"postmarket/internal/testutil"
)

func TestListWebsites_InvalidFilterParams(t *testing.T) {
	h := NewMarketplaceHandler(nil)
	app := fiber.New()
	app.Get("/marketplace/websites", h.ListWebsites)

	tests := []string{
		"/marketplace/websites?min_price=cheap",
		"/marketplace/websites?max_price=1e",
		"/marketplace/websites?min_da=high",
		"/marketplace/websites?min_traffic=lots",
	}

	for _, target := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		if err != nil {
			t.Fatalf("app.Test(%q) error = %v", target, err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("GET %q status = %d, want %d", target, resp.StatusCode, fiber.StatusBadRequest)
		}
	}
}

func TestListWebsites_PriceFilter(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" && os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	userID := testutil.CreateTestUser(t, database, "market@example.com", models.RolePublisher)

	prices := map[string]float64{
		"https://cheap.example.com":  30,
		"https://mid.example.com":    75,
		"https://pricey.example.com": 150,
	}
	for website, price := range prices {
		id := testutil.CreateTestRequest(t, database, userID, website, models.StatusApproved)
		if _, err := database.Pool.Exec(t.Context(),
			"UPDATE publisher_requests SET standard_post_price = $1 WHERE id = $2", price, id); err != nil {
			t.Fatalf("failed to set price: %v", err)
		}
	}
	// A pending request never reaches the marketplace.
	testutil.CreateTestRequest(t, database, userID, "https://unreviewed.example.com", models.StatusPending)

	h := NewMarketplaceHandler(database)
	app := fiber.New()
	app.Get("/marketplace/websites", h.ListWebsites)

	resp, err := app.Test(httptest.NewRequest("GET", "/marketplace/websites?min_price=50&max_price=100", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			Websites []models.Listing `json:"websites"`
			Total    int              `json:"total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if envelope.Data.Total != 1 {
		t.Fatalf("total = %d, want exactly the mid-priced listing", envelope.Data.Total)
	}
	if envelope.Data.Websites[0].Website != "https://mid.example.com" {
		t.Errorf("matched %q, want the $75 listing", envelope.Data.Websites[0].Website)
	}
	if envelope.Data.Websites[0].PriceRange != "$75" {
		t.Errorf("price range = %q, want collapsed single price", envelope.Data.Websites[0].PriceRange)
	}
}
