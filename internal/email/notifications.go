package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"postmarket/internal/config"
	"postmarket/internal/models"
)

// RecipientStore resolves notification recipients.
type RecipientStore interface {
	GetAdminEmails(ctx context.Context) ([]string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Notifier sends email notifications for publisher request events.
type Notifier struct {
	service   *Service
	templates *Templates
	db        RecipientStore
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db RecipientStore) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		db:        db,
	}
}

// NotifyAdminsRequestSubmitted notifies admins that a submission needs review.
func (n *Notifier) NotifyAdminsRequestSubmitted(ctx context.Context, req *models.PublisherRequest) {
	if !n.service.IsEnabled() {
		return
	}

	emails, err := n.db.GetAdminEmails(ctx)
	if err != nil {
		slog.Error("failed to get admin emails", "error", err)
		return
	}
	if len(emails) == 0 {
		return
	}

	subject, htmlBody, textBody := n.templates.RequestSubmitted(req)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// NotifyPublisherApproved notifies the owner that their request was approved.
func (n *Notifier) NotifyPublisherApproved(ctx context.Context, req *models.PublisherRequest) {
	if !n.service.IsEnabled() {
		return
	}

	owner, err := n.db.GetUserByID(ctx, req.UserID)
	if err != nil {
		slog.Error("failed to get request owner", "request_id", req.ID, "error", err)
		return
	}

	subject, htmlBody, textBody := n.templates.RequestApproved(req)
	n.service.SendAsync([]string{owner.Email}, subject, htmlBody, textBody)
}

// NotifyPublisherRejected notifies the owner that their request was rejected.
func (n *Notifier) NotifyPublisherRejected(ctx context.Context, req *models.PublisherRequest, reason string) {
	if !n.service.IsEnabled() {
		return
	}

	owner, err := n.db.GetUserByID(ctx, req.UserID)
	if err != nil {
		slog.Error("failed to get request owner", "request_id", req.ID, "error", err)
		return
	}

	subject, htmlBody, textBody := n.templates.RequestRejected(req, reason)
	n.service.SendAsync([]string{owner.Email}, subject, htmlBody, textBody)
}

// SendPasswordReset emails a reset link to the given address.
func (n *Notifier) SendPasswordReset(email, token string) {
	if !n.service.IsEnabled() {
		return
	}
	subject, htmlBody, textBody := n.templates.PasswordReset(token)
	n.service.SendAsync([]string{email}, subject, htmlBody, textBody)
}
