package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"postmarket/internal/models"
)

const requestColumns = `
	id, user_id, publisher_name, email, company_name, website, category,
	audience_size, phone, address, domain_authority, page_authority,
	monthly_traffic, top_traffic_country, gray_niches, standard_post_price,
	gray_niche_price, dofollow_allowed, nofollow_allowed, post_sample_url,
	content_guidelines, additional_notes, social_media, status,
	rejection_reason, admin_notes, reviewed_by, reviewed_at, analysis,
	created_at, updated_at`

// maxPendingRequests caps how many submissions a publisher can have in the
// review queue at once.
const maxPendingRequests = 5

// CreatePublisherRequest inserts a new submission after checking the pending
// limit. The request starts in pending with no analysis snapshot.
func (d *DB) CreatePublisherRequest(ctx context.Context, req *models.PublisherRequest) error {
	count, err := d.CountPendingRequestsByUser(ctx, req.UserID)
	if err != nil {
		return err
	}
	if count >= maxPendingRequests {
		return ErrPendingRequestLimit
	}

	if req.GrayNiches == nil {
		req.GrayNiches = []string{}
	}
	if req.SocialMedia == nil {
		req.SocialMedia = map[string]string{}
	}

	query := `
		INSERT INTO publisher_requests (
			user_id, publisher_name, email, company_name, website, category,
			audience_size, phone, address, domain_authority, page_authority,
			monthly_traffic, top_traffic_country, gray_niches,
			standard_post_price, gray_niche_price, dofollow_allowed,
			nofollow_allowed, post_sample_url, content_guidelines,
			additional_notes, social_media
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id, status, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query,
		req.UserID,
		req.PublisherName,
		req.Email,
		req.CompanyName,
		req.Website,
		req.Category,
		req.AudienceSize,
		req.Phone,
		req.Address,
		req.DomainAuthority,
		req.PageAuthority,
		req.MonthlyTraffic,
		req.TopTrafficCountry,
		req.GrayNiches,
		req.StandardPostPrice,
		req.GrayNichePrice,
		req.DofollowAllowed,
		req.NofollowAllowed,
		req.PostSampleURL,
		req.ContentGuidelines,
		req.AdditionalNotes,
		req.SocialMedia,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

// CountPendingRequestsByUser counts a publisher's requests still in the queue.
func (d *DB) CountPendingRequestsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM publisher_requests
		WHERE user_id = $1 AND status IN ($2, $3)
	`, userID, models.StatusPending, models.StatusUnderReview).Scan(&count)
	return count, err
}

// GetRequestByID retrieves a single publisher request.
func (d *DB) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.PublisherRequest, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM publisher_requests WHERE id = $1`, id)
	return scanRequest(row)
}

// ListRequestsByUser returns all requests owned by a publisher, newest first.
func (d *DB) ListRequestsByUser(ctx context.Context, userID uuid.UUID) ([]models.PublisherRequest, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+requestColumns+` FROM publisher_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

// ListAllRequests returns requests across all publishers for the admin view,
// optionally filtered by status. The owner's account email is joined in.
func (d *DB) ListAllRequests(ctx context.Context, status string, limit int) ([]models.PublisherRequest, error) {
	query := `
		SELECT r.id, r.user_id, r.publisher_name, r.email, r.company_name,
			r.website, r.category, r.audience_size, r.phone, r.address,
			r.domain_authority, r.page_authority, r.monthly_traffic,
			r.top_traffic_country, r.gray_niches, r.standard_post_price,
			r.gray_niche_price, r.dofollow_allowed, r.nofollow_allowed,
			r.post_sample_url, r.content_guidelines, r.additional_notes,
			r.social_media, r.status, r.rejection_reason, r.admin_notes,
			r.reviewed_by, r.reviewed_at, r.analysis, r.created_at,
			r.updated_at, u.email
		FROM publisher_requests r
		JOIN users u ON u.id = r.user_id
		WHERE ($1 = '' OR r.status = $1)
		ORDER BY r.created_at ASC
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.PublisherRequest
	for rows.Next() {
		req, err := scanRequestFields(rows, true)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// ListApprovedRequests returns approved listings for the marketplace.
func (d *DB) ListApprovedRequests(ctx context.Context, limit int) ([]models.PublisherRequest, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+requestColumns+` FROM publisher_requests
		WHERE status = $1
		ORDER BY reviewed_at DESC NULLS LAST
		LIMIT $2
	`, models.StatusApproved, limit)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

// UpdateAnalysis replaces the analysis snapshot. Re-analysis always replaces,
// never merges.
func (d *DB) UpdateAnalysis(ctx context.Context, id uuid.UUID, analysis *models.WebsiteAnalysis) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE publisher_requests
		SET analysis = $1, updated_at = NOW()
		WHERE id = $2
	`, analysis, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// ApproveRequest approves a pending or under-review request.
func (d *DB) ApproveRequest(ctx context.Context, id, reviewerID uuid.UUID, notes string) error {
	return d.review(ctx, id, reviewerID, models.StatusApproved, "", notes)
}

// RejectRequest rejects a pending or under-review request with a reason.
func (d *DB) RejectRequest(ctx context.Context, id, reviewerID uuid.UUID, reason, notes string) error {
	return d.review(ctx, id, reviewerID, models.StatusRejected, reason, notes)
}

func (d *DB) review(ctx context.Context, id, reviewerID uuid.UUID, status, reason, notes string) error {
	now := time.Now()
	result, err := d.Pool.Exec(ctx, `
		UPDATE publisher_requests
		SET status = $1, rejection_reason = $2, admin_notes = $3,
			reviewed_by = $4, reviewed_at = $5, updated_at = NOW()
		WHERE id = $6 AND status IN ($7, $8)
	`, status, reason, notes, reviewerID, now, id, models.StatusPending, models.StatusUnderReview)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// MarkUnderReview moves a pending request into the under_review state.
func (d *DB) MarkUnderReview(ctx context.Context, id, reviewerID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE publisher_requests
		SET status = $1, reviewed_by = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, models.StatusUnderReview, reviewerID, id, models.StatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// DeleteRequestByOwner deletes a request on behalf of its owner. Only
// pending and rejected requests are deletable.
func (d *DB) DeleteRequestByOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `
		DELETE FROM publisher_requests
		WHERE id = $1 AND user_id = $2 AND status IN ($3, $4)
	`, id, ownerID, models.StatusPending, models.StatusRejected)
	if err != nil {
		return err
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	// Distinguish "not yours / gone" from "not deletable in this state".
	var status string
	err = d.Pool.QueryRow(ctx, `
		SELECT status FROM publisher_requests WHERE id = $1 AND user_id = $2
	`, id, ownerID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	return ErrRequestNotDeletable
}

// GetDashboardStats aggregates the review queue for the admin dashboard.
func (d *DB) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := d.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'under_review'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COALESCE(SUM((analysis->>'monthly_traffic')::BIGINT), 0)
		FROM publisher_requests
	`).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.UnderReview,
		&stats.Approved,
		&stats.Rejected,
		&stats.TotalTraffic,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// CountRequestsByStatus returns request counts keyed by status.
func (d *DB) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT status, COUNT(*) FROM publisher_requests GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// ListRequestsNeedingAnalysis returns requests with no snapshot, or approved
// listings whose snapshot is older than maxAge.
func (d *DB) ListRequestsNeedingAnalysis(ctx context.Context, maxAge time.Duration, limit int) ([]models.PublisherRequest, error) {
	cutoff := time.Now().Add(-maxAge)
	rows, err := d.Pool.Query(ctx, `
		SELECT `+requestColumns+` FROM publisher_requests
		WHERE analysis IS NULL
			OR (status = $1 AND (analysis->>'last_analyzed')::TIMESTAMPTZ < $2)
		ORDER BY created_at ASC
		LIMIT $3
	`, models.StatusApproved, cutoff, limit)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]models.PublisherRequest, error) {
	defer rows.Close()

	var requests []models.PublisherRequest
	for rows.Next() {
		req, err := scanRequestFields(rows, false)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func scanRequest(row pgx.Row) (*models.PublisherRequest, error) {
	req, err := scanRequestFields(row, false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	return req, err
}

func scanRequestFields(row pgx.Row, withOwnerEmail bool) (*models.PublisherRequest, error) {
	var req models.PublisherRequest
	dest := []any{
		&req.ID, &req.UserID, &req.PublisherName, &req.Email, &req.CompanyName,
		&req.Website, &req.Category, &req.AudienceSize, &req.Phone, &req.Address,
		&req.DomainAuthority, &req.PageAuthority, &req.MonthlyTraffic,
		&req.TopTrafficCountry, &req.GrayNiches, &req.StandardPostPrice,
		&req.GrayNichePrice, &req.DofollowAllowed, &req.NofollowAllowed,
		&req.PostSampleURL, &req.ContentGuidelines, &req.AdditionalNotes,
		&req.SocialMedia, &req.Status, &req.RejectionReason, &req.AdminNotes,
		&req.ReviewedBy, &req.ReviewedAt, &req.Analysis,
		&req.CreatedAt, &req.UpdatedAt,
	}
	if withOwnerEmail {
		dest = append(dest, &req.OwnerEmail)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &req, nil
}
