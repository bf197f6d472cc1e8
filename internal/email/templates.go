package email

import (
	"fmt"
	"html"

	"postmarket/internal/config"
	"postmarket/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #911b17; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .success { color: #059669; }
        .error { color: #dc2626; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SMTPFromName), content,
		html.EscapeString(t.cfg.SMTPFromName), t.cfg.BaseURL, t.cfg.BaseURL)
}

// RequestSubmitted renders the admin notification for a new submission.
func (t *Templates) RequestSubmitted(req *models.PublisherRequest) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("New publisher request: %s", req.Website)

	content := fmt.Sprintf(`
        <p>A new publisher request is waiting for review.</p>
        <div class="info-box">
            <p><span class="label">Website:</span> %s</p>
            <p><span class="label">Company:</span> %s</p>
            <p><span class="label">Category:</span> %s</p>
            <p><span class="label">Price range:</span> %s</p>
            <p><span class="label">Submitted by:</span> %s (%s)</p>
        </div>`,
		html.EscapeString(req.Website),
		html.EscapeString(req.CompanyName),
		html.EscapeString(req.Category),
		html.EscapeString(req.PriceRange()),
		html.EscapeString(req.PublisherName),
		html.EscapeString(req.Email),
	)
	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(
		"A new publisher request is waiting for review.\n\nWebsite: %s\nCompany: %s\nCategory: %s\nPrice range: %s\nSubmitted by: %s (%s)\n",
		req.Website, req.CompanyName, req.Category, req.PriceRange(), req.PublisherName, req.Email,
	)
	return subject, htmlBody, textBody
}

// RequestApproved renders the publisher notification for an approval.
func (t *Templates) RequestApproved(req *models.PublisherRequest) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Your website %s was approved", req.Website)

	content := fmt.Sprintf(`
        <p class="success">Good news! Your website has been approved and is now listed in the marketplace.</p>
        <div class="info-box">
            <p><span class="label">Website:</span> %s</p>
            <p><span class="label">Price range:</span> %s</p>
        </div>`,
		html.EscapeString(req.Website),
		html.EscapeString(req.PriceRange()),
	)
	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(
		"Good news! Your website %s has been approved and is now listed in the marketplace.\nPrice range: %s\n",
		req.Website, req.PriceRange(),
	)
	return subject, htmlBody, textBody
}

// RequestRejected renders the publisher notification for a rejection.
func (t *Templates) RequestRejected(req *models.PublisherRequest, reason string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Your website %s was not approved", req.Website)

	content := fmt.Sprintf(`
        <p class="error">Your publisher request was not approved.</p>
        <div class="info-box">
            <p><span class="label">Website:</span> %s</p>
            <p><span class="label">Reason:</span> %s</p>
        </div>
        <p>You can address the reason above and submit a new request at any time.</p>`,
		html.EscapeString(req.Website),
		html.EscapeString(reason),
	)
	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(
		"Your publisher request for %s was not approved.\nReason: %s\n\nYou can address the reason above and submit a new request at any time.\n",
		req.Website, reason,
	)
	return subject, htmlBody, textBody
}

// PasswordReset renders the password reset email.
func (t *Templates) PasswordReset(token string) (subject, htmlBody, textBody string) {
	subject = "Password reset request"
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", t.cfg.BaseURL, token)

	content := fmt.Sprintf(`
        <p>A password reset was requested for your account. The link below is valid for one hour.</p>
        <p><a href="%s">Reset your password</a></p>
        <p>If you did not request this, you can ignore this email.</p>`, resetURL)
	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(
		"A password reset was requested for your account. The link below is valid for one hour.\n\n%s\n\nIf you did not request this, you can ignore this email.\n",
		resetURL,
	)
	return subject, htmlBody, textBody
}
