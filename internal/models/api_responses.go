package models

// DashboardStats summarizes the review queue for the admin dashboard.
type DashboardStats struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	UnderReview  int64 `json:"under_review"`
	Approved     int64 `json:"approved"`
	Rejected     int64 `json:"rejected"`
	TotalTraffic int64 `json:"total_traffic"`
}

// Listing is the advertiser-facing projection of an approved request.
type Listing struct {
	ID                string           `json:"id"`
	Website           string           `json:"website"`
	CompanyName       string           `json:"company_name"`
	Category          string           `json:"category"`
	PriceRange        string           `json:"price_range"`
	StandardPostPrice float64          `json:"standard_post_price"`
	GrayNichePrice    *float64         `json:"gray_niche_price"`
	GrayNiches        []string         `json:"gray_niches"`
	DofollowAllowed   bool             `json:"dofollow_allowed"`
	NofollowAllowed   bool             `json:"nofollow_allowed"`
	Analysis          *WebsiteAnalysis `json:"analysis"`
}

// NewListing projects a publisher request into its marketplace listing.
func NewListing(r *PublisherRequest) Listing {
	niches := r.GrayNiches
	if niches == nil {
		niches = []string{}
	}
	return Listing{
		ID:                r.ID.String(),
		Website:           r.Website,
		CompanyName:       r.CompanyName,
		Category:          r.Category,
		PriceRange:        r.PriceRange(),
		StandardPostPrice: r.StandardPostPrice,
		GrayNichePrice:    r.GrayNichePrice,
		GrayNiches:        niches,
		DofollowAllowed:   r.DofollowAllowed,
		NofollowAllowed:   r.NofollowAllowed,
		Analysis:          r.Analysis,
	}
}
