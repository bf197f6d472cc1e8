package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"postmarket/internal/db"
	"postmarket/internal/models"
)

// MarketplaceHandler serves approved listings to advertisers.
type MarketplaceHandler struct {
	db *db.DB
}

// NewMarketplaceHandler creates a new marketplace handler.
func NewMarketplaceHandler(database *db.DB) *MarketplaceHandler {
	return &MarketplaceHandler{db: database}
}

// ListWebsites returns approved listings matching the optional filter
// parameters. All parameters are AND-combined.
func (h *MarketplaceHandler) ListWebsites(c fiber.Ctx) error {
	filter, err := parseListingFilter(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	requests, err := h.db.ListApprovedRequests(c.Context(), 500)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch listings")
	}

	matched := models.FilterListings(requests, filter)

	listings := make([]models.Listing, len(matched))
	for i := range matched {
		listings[i] = models.NewListing(&matched[i])
	}

	return jsonSuccess(c, fiber.Map{
		"websites": listings,
		"total":    len(listings),
	})
}

func parseListingFilter(c fiber.Ctx) (*models.ListingFilter, error) {
	filter := &models.ListingFilter{
		Category:  c.Query("category", ""),
		GrayNiche: c.Query("gray_niche", ""),
		Country:   c.Query("country", ""),
	}

	var err error
	if filter.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return nil, err
	}
	if filter.MinDA, err = queryInt(c, "min_da"); err != nil {
		return nil, err
	}
	if filter.MaxDA, err = queryInt(c, "max_da"); err != nil {
		return nil, err
	}
	if filter.MinTraffic, err = queryInt64(c, "min_traffic"); err != nil {
		return nil, err
	}
	if filter.MaxTraffic, err = queryInt64(c, "max_traffic"); err != nil {
		return nil, err
	}
	return filter, nil
}

func queryFloat(c fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key, "")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &filterError{key}
	}
	return &v, nil
}

func queryInt(c fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key, "")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &filterError{key}
	}
	return &v, nil
}

func queryInt64(c fiber.Ctx, key string) (*int64, error) {
	raw := c.Query(key, "")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &filterError{key}
	}
	return &v, nil
}

type filterError struct {
	key string
}

func (e *filterError) Error() string {
	return "invalid value for " + e.key
}
