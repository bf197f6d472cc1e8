package models

import "testing"

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func TestListingFilter_PriceRange(t *testing.T) {
	requests := []PublisherRequest{
		{Website: "https://cheap.example.com", Status: StatusApproved, StandardPostPrice: 30},
		{Website: "https://mid.example.com", Status: StatusApproved, StandardPostPrice: 75},
		{Website: "https://premium.example.com", Status: StatusApproved, StandardPostPrice: 150},
	}

	filter := &ListingFilter{MinPrice: floatPtr(50), MaxPrice: floatPtr(100)}
	got := FilterListings(requests, filter)

	if len(got) != 1 {
		t.Fatalf("FilterListings() returned %d results, want 1", len(got))
	}
	if got[0].StandardPostPrice != 75 {
		t.Errorf("FilterListings() kept price %v, want 75", got[0].StandardPostPrice)
	}
}

func TestListingFilter_Matches(t *testing.T) {
	base := PublisherRequest{
		Category:          "Technology",
		StandardPostPrice: 100,
		GrayNiches:        []string{"Casino / Gambling"},
		DomainAuthority:   intPtr(45),
		MonthlyTraffic:    int64Ptr(20000),
		TopTrafficCountry: "United States",
	}

	tests := []struct {
		name     string
		filter   ListingFilter
		expected bool
	}{
		{"empty filter matches", ListingFilter{}, true},
		{"category match", ListingFilter{Category: "Technology"}, true},
		{"category mismatch", ListingFilter{Category: "Travel"}, false},
		{"da range match", ListingFilter{MinDA: intPtr(40), MaxDA: intPtr(50)}, true},
		{"da below min", ListingFilter{MinDA: intPtr(60)}, false},
		{"traffic range match", ListingFilter{MinTraffic: int64Ptr(10000)}, true},
		{"traffic above max", ListingFilter{MaxTraffic: int64Ptr(5000)}, false},
		{"gray niche opt-in", ListingFilter{GrayNiche: "Casino / Gambling"}, true},
		{"gray niche not accepted", ListingFilter{GrayNiche: "Adult"}, false},
		{"country match", ListingFilter{Country: "United States"}, true},
		{"country mismatch", ListingFilter{Country: "Germany"}, false},
		{
			"all criteria combined",
			ListingFilter{
				Category:   "Technology",
				MinPrice:   floatPtr(50),
				MaxPrice:   floatPtr(150),
				MinDA:      intPtr(40),
				MinTraffic: int64Ptr(10000),
				GrayNiche:  "Casino / Gambling",
				Country:    "United States",
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			if got := tt.filter.Matches(&r); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestListingFilter_PrefersAnalysisSnapshot(t *testing.T) {
	r := PublisherRequest{
		StandardPostPrice: 100,
		DomainAuthority:   intPtr(10),
		MonthlyTraffic:    int64Ptr(100),
		Analysis: &WebsiteAnalysis{
			DomainAuthority: 55,
			MonthlyTraffic:  50000,
		},
	}

	filter := &ListingFilter{MinDA: intPtr(50), MinTraffic: int64Ptr(10000)}
	if !filter.Matches(&r) {
		t.Error("Matches() should use the analysis snapshot over reported metrics")
	}
}

func TestNewListing_CollapsedPriceRange(t *testing.T) {
	r := PublisherRequest{StandardPostPrice: 80}
	listing := NewListing(&r)
	if listing.PriceRange != "$80" {
		t.Errorf("NewListing() price range = %q, want %q", listing.PriceRange, "$80")
	}
	if listing.GrayNiches == nil {
		t.Error("NewListing() gray niches should be an empty slice, not nil")
	}
}
