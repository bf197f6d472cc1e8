package models

// ListingFilter is the advertiser-side filter over approved listings.
// All fields are optional and AND-combined.
type ListingFilter struct {
	Category   string
	MinPrice   *float64
	MaxPrice   *float64
	MinDA      *int
	MaxDA      *int
	MinTraffic *int64
	MaxTraffic *int64
	GrayNiche  string
	Country    string
}

// Matches applies the filter predicate to one request. Price compares the
// standard post price; DA and traffic prefer the analysis snapshot and fall
// back to publisher-reported numbers.
func (f *ListingFilter) Matches(r *PublisherRequest) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && r.StandardPostPrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && r.StandardPostPrice > *f.MaxPrice {
		return false
	}

	da := listingDA(r)
	if f.MinDA != nil && da < *f.MinDA {
		return false
	}
	if f.MaxDA != nil && da > *f.MaxDA {
		return false
	}

	traffic := listingTraffic(r)
	if f.MinTraffic != nil && traffic < *f.MinTraffic {
		return false
	}
	if f.MaxTraffic != nil && traffic > *f.MaxTraffic {
		return false
	}

	if f.GrayNiche != "" && !r.AcceptsGrayNiche(f.GrayNiche) {
		return false
	}
	if f.Country != "" && listingCountry(r) != f.Country {
		return false
	}
	return true
}

// FilterListings returns the requests matching the filter, preserving order.
func FilterListings(requests []PublisherRequest, filter *ListingFilter) []PublisherRequest {
	filtered := []PublisherRequest{}
	for i := range requests {
		if filter.Matches(&requests[i]) {
			filtered = append(filtered, requests[i])
		}
	}
	return filtered
}

func listingDA(r *PublisherRequest) int {
	if r.Analysis != nil {
		return r.Analysis.DomainAuthority
	}
	if r.DomainAuthority != nil {
		return *r.DomainAuthority
	}
	return 0
}

func listingTraffic(r *PublisherRequest) int64 {
	if r.Analysis != nil {
		return r.Analysis.MonthlyTraffic
	}
	if r.MonthlyTraffic != nil {
		return *r.MonthlyTraffic
	}
	return 0
}

func listingCountry(r *PublisherRequest) string {
	if r.Analysis != nil && r.Analysis.TopTrafficCountry != "" {
		return r.Analysis.TopTrafficCountry
	}
	return r.TopTrafficCountry
}
