package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Request status constants
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// PublisherRequest is one submission by a publisher listing one website for
// paid content placements.
type PublisherRequest struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	// Site descriptors
	PublisherName string `json:"publisher_name"`
	Email         string `json:"email"`
	CompanyName   string `json:"company_name"`
	Website       string `json:"website"`
	Category      string `json:"category"`
	AudienceSize  int64  `json:"audience_size"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`

	// Publisher-reported SEO metrics
	DomainAuthority   *int   `json:"domain_authority"`
	PageAuthority     *int   `json:"page_authority"`
	MonthlyTraffic    *int64 `json:"monthly_traffic"`
	TopTrafficCountry string `json:"top_traffic_country,omitempty"`

	// Monetization
	GrayNiches        []string `json:"gray_niches"`
	StandardPostPrice float64  `json:"standard_post_price"`
	GrayNichePrice    *float64 `json:"gray_niche_price"`

	// Link policy
	DofollowAllowed bool `json:"dofollow_allowed"`
	NofollowAllowed bool `json:"nofollow_allowed"`

	// Content metadata
	PostSampleURL     string            `json:"post_sample_url,omitempty"`
	ContentGuidelines string            `json:"content_guidelines,omitempty"`
	AdditionalNotes   string            `json:"additional_notes,omitempty"`
	SocialMedia       map[string]string `json:"social_media"`

	// Lifecycle
	Status          string     `json:"status"` // pending, under_review, approved, rejected
	RejectionReason string     `json:"rejection_reason,omitempty"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
	ReviewedBy      *uuid.UUID `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`

	// Derived snapshot, replaced wholesale on each analysis run
	Analysis *WebsiteAnalysis `json:"analysis"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Non-DB field, populated via JOIN for the admin view
	OwnerEmail string `json:"owner_email,omitempty"`
}

// IsDeletable reports whether the owner may still delete the request.
// Approved listings and requests under review must go through an admin.
func (r *PublisherRequest) IsDeletable() bool {
	return r.Status == StatusPending || r.Status == StatusRejected
}

// IsReviewable reports whether an admin decision can still be applied.
func (r *PublisherRequest) IsReviewable() bool {
	return r.Status == StatusPending || r.Status == StatusUnderReview
}

// PriceRange renders the advertiser-facing price range. When no separate
// gray-niche price is set the range collapses to the standard price.
func (r *PublisherRequest) PriceRange() string {
	if r.GrayNichePrice != nil && *r.GrayNichePrice != r.StandardPostPrice {
		return fmt.Sprintf("$%.0f - $%.0f", r.StandardPostPrice, *r.GrayNichePrice)
	}
	return fmt.Sprintf("$%.0f", r.StandardPostPrice)
}

// MaxPrice returns the highest price an advertiser could pay for this site.
func (r *PublisherRequest) MaxPrice() float64 {
	if r.GrayNichePrice != nil && *r.GrayNichePrice > r.StandardPostPrice {
		return *r.GrayNichePrice
	}
	return r.StandardPostPrice
}

// AcceptsGrayNiche reports whether the publisher opted in to the given niche.
func (r *PublisherRequest) AcceptsGrayNiche(niche string) bool {
	for _, n := range r.GrayNiches {
		if n == niche {
			return true
		}
	}
	return false
}
