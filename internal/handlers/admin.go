package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"postmarket/internal/db"
	"postmarket/internal/email"
	"postmarket/internal/models"
)

// AdminHandler handles the review surface. All routes require the admin
// role, enforced by middleware.
type AdminHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(database *db.DB, notifier *email.Notifier) *AdminHandler {
	return &AdminHandler{db: database, notifier: notifier}
}

// DashboardStats returns request totals by status and total estimated
// traffic across the marketplace.
func (h *AdminHandler) DashboardStats(c fiber.Ctx) error {
	stats, err := h.db.GetDashboardStats(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch dashboard stats")
	}
	return jsonSuccess(c, stats)
}

// List returns all publisher requests with an optional status filter.
func (h *AdminHandler) List(c fiber.Ctx) error {
	status := c.Query("status", "")
	switch status {
	case "", models.StatusPending, models.StatusUnderReview, models.StatusApproved, models.StatusRejected:
	default:
		return jsonError(c, fiber.StatusBadRequest, "invalid status filter")
	}

	requests, err := h.db.ListAllRequests(c.Context(), status, 200)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch requests")
	}

	if requests == nil {
		requests = []models.PublisherRequest{}
	}
	return jsonSuccess(c, requests)
}

// Approve approves a pending or under-review request.
func (h *AdminHandler) Approve(c fiber.Ctx) error {
	admin, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var body struct {
		Notes string `json:"notes"`
	}
	json.Unmarshal(c.Body(), &body) // Body and notes are both optional

	if err := h.db.ApproveRequest(c.Context(), id, admin.ID, body.Notes); err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found or already processed")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to approve request")
	}

	req, err := h.db.GetRequestByID(c.Context(), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch request")
	}

	if h.notifier != nil {
		go h.notifier.NotifyPublisherApproved(context.Background(), req)
	}

	return jsonSuccess(c, req)
}

// Reject rejects a pending or under-review request. The reason is
// required and stored with the request so the publisher can act on it.
func (h *AdminHandler) Reject(c fiber.Ctx) error {
	admin, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var body struct {
		Reason string `json:"reason"`
		Notes  string `json:"notes"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Reason = strings.TrimSpace(body.Reason)
	if body.Reason == "" {
		return jsonError(c, fiber.StatusBadRequest, "a rejection reason is required")
	}

	if err := h.db.RejectRequest(c.Context(), id, admin.ID, body.Reason, body.Notes); err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found or already processed")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to reject request")
	}

	req, err := h.db.GetRequestByID(c.Context(), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch request")
	}

	if h.notifier != nil {
		go h.notifier.NotifyPublisherRejected(context.Background(), req, body.Reason)
	}

	return jsonSuccess(c, req)
}

// MarkUnderReview moves a pending request into the under-review state so
// other admins can see it is being worked on.
func (h *AdminHandler) MarkUnderReview(c fiber.Ctx) error {
	admin, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	if err := h.db.MarkUnderReview(c.Context(), id, admin.ID); err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found or already processed")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update request")
	}

	return jsonSuccess(c, fiber.Map{
		"message": "request marked as under review",
	})
}
