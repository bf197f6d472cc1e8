package models

import "time"

// Traffic estimate sources
const (
	TrafficSourceReported   = "reported"   // publisher-supplied Ahrefs number
	TrafficSourceSimilarWeb = "similarweb" // paid traffic API
	TrafficSourceEstimated  = "estimated"  // heuristic fallback
)

// WebsiteAnalysis is a derived, recomputable snapshot of a listed website.
// It is never hand-edited; re-analysis replaces it wholesale.
type WebsiteAnalysis struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`

	Title            string `json:"title"`
	Description      string `json:"description"`
	Keywords         string `json:"keywords,omitempty"`
	HasAnalytics     bool   `json:"has_analytics"`
	HasFacebookPixel bool   `json:"has_facebook_pixel"`
	Accessible       bool   `json:"accessible"`

	MonthlyTraffic int64  `json:"monthly_traffic"`
	TrafficSource  string `json:"traffic_source"` // reported, similarweb, estimated

	DomainAuthority   int    `json:"domain_authority"`
	PageAuthority     int    `json:"page_authority"`
	TopTrafficCountry string `json:"top_traffic_country,omitempty"`

	SocialFollowers map[string]int64 `json:"social_followers,omitempty"`
	TotalAudience   int64            `json:"total_audience"`

	Category     string    `json:"category"`
	TrustScore   int       `json:"trust_score"` // always within [0,100]
	LastAnalyzed time.Time `json:"last_analyzed"`
}

// VerificationResult classifies a website URL as reachable or not. Failure is
// non-fatal and only affects hint text on the submission form.
type VerificationResult struct {
	URL          string    `json:"url"`
	IsAccessible bool      `json:"is_accessible"`
	Title        string    `json:"title,omitempty"`
	HasAnalytics bool      `json:"has_analytics"`
	Error        string    `json:"error,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}
