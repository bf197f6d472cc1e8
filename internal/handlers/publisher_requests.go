package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"postmarket/internal/analyzer"
	"postmarket/internal/cache"
	"postmarket/internal/config"
	"postmarket/internal/db"
	"postmarket/internal/email"
	"postmarket/internal/metrics"
	"postmarket/internal/models"
	"postmarket/internal/validation"
)

const (
	verificationTTL  = 10 * time.Minute
	analysisCooldown = 5 * time.Minute
)

// AnalysisQueue schedules background analysis for a request.
type AnalysisQueue interface {
	Enqueue(id uuid.UUID)
}

// RequestHandler handles the publisher request workflow.
type RequestHandler struct {
	db       *db.DB
	catalog  *config.Catalog
	analyzer *analyzer.Analyzer
	cache    *cache.Cache
	notifier *email.Notifier
	queue    AnalysisQueue
}

// NewRequestHandler creates a new publisher request handler.
func NewRequestHandler(database *db.DB, catalog *config.Catalog, a *analyzer.Analyzer, cch *cache.Cache, notifier *email.Notifier, queue AnalysisQueue) *RequestHandler {
	return &RequestHandler{
		db:       database,
		catalog:  catalog,
		analyzer: a,
		cache:    cch,
		notifier: notifier,
		queue:    queue,
	}
}

type createRequestBody struct {
	PublisherName     string            `json:"publisher_name"`
	Email             string            `json:"email"`
	CompanyName       string            `json:"company_name"`
	Website           string            `json:"website"`
	Category          string            `json:"category"`
	AudienceSize      int64             `json:"audience_size"`
	Phone             string            `json:"phone"`
	Address           string            `json:"address"`
	DomainAuthority   *int              `json:"domain_authority"`
	PageAuthority     *int              `json:"page_authority"`
	MonthlyTraffic    *int64            `json:"monthly_traffic"`
	TopTrafficCountry string            `json:"top_traffic_country"`
	GrayNiches        []string          `json:"gray_niches"`
	StandardPostPrice float64           `json:"standard_post_price"`
	GrayNichePrice    *float64          `json:"gray_niche_price"`
	DofollowAllowed   bool              `json:"dofollow_allowed"`
	NofollowAllowed   bool              `json:"nofollow_allowed"`
	PostSampleURL     string            `json:"post_sample_url"`
	ContentGuidelines string            `json:"content_guidelines"`
	AdditionalNotes   string            `json:"additional_notes"`
	SocialMedia       map[string]string `json:"social_media"`
}

func (b *createRequestBody) validate(catalog *config.Catalog) (string, bool) {
	if b.PublisherName == "" || b.Email == "" || b.CompanyName == "" || b.Website == "" || b.Category == "" {
		return "publisher name, email, company name, website and category are required", false
	}
	if !validation.ValidateEmail(b.Email) {
		return "invalid email address", false
	}
	if valid, msg := validation.ValidateURL(b.Website); !valid {
		return msg, false
	}
	if !catalog.HasCategory(b.Category) {
		return "unknown category", false
	}
	if b.StandardPostPrice <= 0 {
		return "standard post price must be greater than zero", false
	}
	if b.GrayNichePrice != nil && *b.GrayNichePrice <= 0 {
		return "gray niche price must be greater than zero", false
	}
	if b.AudienceSize < 0 {
		return "audience size cannot be negative", false
	}
	for _, niche := range b.GrayNiches {
		if !catalog.HasGrayNiche(niche) {
			return fmt.Sprintf("unknown gray niche: %s", niche), false
		}
	}
	if b.DomainAuthority != nil && (*b.DomainAuthority < 0 || *b.DomainAuthority > 100) {
		return "domain authority must be within 0-100", false
	}
	if b.PageAuthority != nil && (*b.PageAuthority < 0 || *b.PageAuthority > 100) {
		return "page authority must be within 0-100", false
	}
	if b.MonthlyTraffic != nil && *b.MonthlyTraffic < 0 {
		return "monthly traffic cannot be negative", false
	}
	if b.PostSampleURL != "" {
		if valid, msg := validation.ValidateURL(b.PostSampleURL); !valid {
			return "post sample: " + msg, false
		}
	}
	return "", true
}

// Create submits a new publisher request. Analysis runs in the background
// after the request is persisted.
func (h *RequestHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body createRequestBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if msg, ok := body.validate(h.catalog); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	req := &models.PublisherRequest{
		UserID:            user.ID,
		PublisherName:     body.PublisherName,
		Email:             body.Email,
		CompanyName:       body.CompanyName,
		Website:           body.Website,
		Category:          body.Category,
		AudienceSize:      body.AudienceSize,
		Phone:             body.Phone,
		Address:           body.Address,
		DomainAuthority:   body.DomainAuthority,
		PageAuthority:     body.PageAuthority,
		MonthlyTraffic:    body.MonthlyTraffic,
		TopTrafficCountry: body.TopTrafficCountry,
		GrayNiches:        body.GrayNiches,
		StandardPostPrice: body.StandardPostPrice,
		GrayNichePrice:    body.GrayNichePrice,
		DofollowAllowed:   body.DofollowAllowed,
		NofollowAllowed:   body.NofollowAllowed,
		PostSampleURL:     body.PostSampleURL,
		ContentGuidelines: body.ContentGuidelines,
		AdditionalNotes:   body.AdditionalNotes,
		SocialMedia:       body.SocialMedia,
	}

	if err := h.db.CreatePublisherRequest(c.Context(), req); err != nil {
		if errors.Is(err, db.ErrPendingRequestLimit) {
			return jsonError(c, fiber.StatusTooManyRequests, err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit request")
	}

	metrics.RecordSubmission()

	if h.queue != nil {
		h.queue.Enqueue(req.ID)
	}
	if h.notifier != nil {
		go h.notifier.NotifyAdminsRequestSubmitted(context.Background(), req)
	}

	return jsonSuccess(c, req)
}

// List returns the authenticated user's own requests, newest first.
func (h *RequestHandler) List(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	requests, err := h.db.ListRequestsByUser(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch requests")
	}

	if requests == nil {
		requests = []models.PublisherRequest{}
	}
	return jsonSuccess(c, requests)
}

// Get returns a single request. Owners see their own; admins see any.
func (h *RequestHandler) Get(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := h.db.GetRequestByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch request")
	}

	if req.UserID != user.ID && !user.IsAdmin() {
		return jsonError(c, fiber.StatusNotFound, "request not found")
	}

	return jsonSuccess(c, req)
}

// Delete removes one of the caller's own requests. Only pending and
// rejected requests can be deleted.
func (h *RequestHandler) Delete(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	if err := h.db.DeleteRequestByOwner(c.Context(), id, user.ID); err != nil {
		switch {
		case errors.Is(err, db.ErrRequestNotFound):
			return jsonError(c, fiber.StatusNotFound, "request not found")
		case errors.Is(err, db.ErrRequestNotDeletable):
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			return jsonError(c, fiber.StatusInternalServerError, "failed to delete request")
		}
	}

	return jsonSuccess(c, fiber.Map{
		"message": "request deleted successfully",
	})
}

// VerifyWebsite classifies a URL as reachable or not. Failure is
// informational only and never blocks submission.
func (h *RequestHandler) VerifyWebsite(c fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		// Also accept a URL-encoded path param.
		if param := c.Params("url"); param != "" {
			if decoded, err := url.QueryUnescape(param); err == nil {
				rawURL = decoded
			}
		}
	}
	if rawURL == "" {
		return jsonError(c, fiber.StatusBadRequest, "url is required")
	}

	if cached, err := h.cache.GetVerification(c.Context(), rawURL); err == nil && cached != nil {
		return jsonSuccess(c, cached)
	}

	result := h.analyzer.Verify(c.Context(), rawURL)

	if err := h.cache.SetVerification(c.Context(), rawURL, &result, verificationTTL); err != nil {
		slog.Warn("failed to cache verification result", "url", rawURL, "error", err)
	}

	return jsonSuccess(c, result)
}

// Analyze re-runs website analysis for a request on demand and replaces
// the stored snapshot. A short cooldown prevents hammering the site.
func (h *RequestHandler) Analyze(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := h.db.GetRequestByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch request")
	}

	if req.UserID != user.ID && !user.IsAdmin() {
		return jsonError(c, fiber.StatusNotFound, "request not found")
	}

	if recent, err := h.cache.RecentlyAnalyzed(c.Context(), id.String()); err == nil && recent {
		return jsonError(c, fiber.StatusTooManyRequests, "this website was analyzed recently, try again in a few minutes")
	}

	analysis := h.analyzer.Analyze(c.Context(), req)
	if err := h.db.UpdateAnalysis(c.Context(), id, analysis); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to store analysis")
	}
	metrics.RecordAnalysisRun("manual")

	if err := h.cache.MarkAnalyzed(c.Context(), id.String(), analysisCooldown); err != nil {
		slog.Warn("failed to set analysis cooldown", "request_id", id, "error", err)
	}

	return jsonSuccess(c, analysis)
}

// Catalog returns the marketplace vocabulary used by submission forms.
func (h *RequestHandler) Catalog(c fiber.Ctx) error {
	return jsonSuccess(c, fiber.Map{
		"categories":  h.catalog.Categories,
		"gray_niches": h.catalog.GrayNiches,
		"countries":   h.catalog.Countries,
	})
}
