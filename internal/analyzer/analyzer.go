// Package analyzer implements the website heuristic analyzer: it fetches a
// listed site, extracts content signals, estimates traffic and computes a
// trust score. Analysis is deliberately best-effort and never fails the
// caller; every fetch error degrades to heuristic estimates.
package analyzer

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"postmarket/internal/models"
	"postmarket/internal/validation"
)

const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBodyBytes = 2 << 20 // cap page downloads at 2 MiB
)

// Analyzer fetches and scores listed websites.
type Analyzer struct {
	client    *http.Client
	estimator TrafficEstimator
}

// New creates an analyzer with the given traffic estimator and fetch timeout.
func New(estimator TrafficEstimator, timeout time.Duration) *Analyzer {
	return &Analyzer{
		estimator: estimator,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// pageInfo holds the signals extracted from a fetched page.
type pageInfo struct {
	title            string
	description      string
	keywords         string
	hasAnalytics     bool
	hasFacebookPixel bool
	accessible       bool
}

// Analyze recomputes the analysis snapshot for a request. It always returns
// a usable snapshot; the previous one must be replaced, never merged.
func (a *Analyzer) Analyze(ctx context.Context, req *models.PublisherRequest) *models.WebsiteAnalysis {
	domain := hostOf(req.Website)
	info := a.fetchPageInfo(ctx, req.Website)

	traffic, source := a.estimateTraffic(ctx, req, domain)

	followers := make(map[string]int64)
	var socialTotal int64
	for platform, link := range req.SocialMedia {
		if link == "" {
			continue
		}
		n := rand.Int64N(50000) + 500
		followers[platform] = n
		socialTotal += n
	}

	analysis := &models.WebsiteAnalysis{
		URL:              req.Website,
		Domain:           domain,
		Title:            info.title,
		Description:      info.description,
		Keywords:         info.keywords,
		HasAnalytics:     info.hasAnalytics,
		HasFacebookPixel: info.hasFacebookPixel,
		Accessible:       info.accessible,

		MonthlyTraffic: traffic,
		TrafficSource:  source,

		DomainAuthority:   authorityOrEstimate(req.DomainAuthority, 30, 20),
		PageAuthority:     authorityOrEstimate(req.PageAuthority, 25, 15),
		TopTrafficCountry: req.TopTrafficCountry,

		SocialFollowers: followers,
		TotalAudience:   traffic + socialTotal + req.AudienceSize,

		Category:     Categorize(info.title, info.description),
		TrustScore:   TrustScore(info.hasAnalytics, info.title, info.description, traffic),
		LastAnalyzed: time.Now(),
	}
	return analysis
}

// Verify classifies a URL as reachable. Failure is non-fatal; the result
// only drives hint text on the submission form.
func (a *Analyzer) Verify(ctx context.Context, rawURL string) models.VerificationResult {
	result := models.VerificationResult{URL: rawURL, CheckedAt: time.Now()}

	if valid, msg := validation.ValidateURLForFetch(rawURL); !valid {
		result.Error = msg
		return result
	}

	info := a.fetchPageInfo(ctx, rawURL)
	result.IsAccessible = info.accessible
	result.Title = info.title
	result.HasAnalytics = info.hasAnalytics
	if !info.accessible {
		result.Error = "website not accessible"
	}
	return result
}

// fetchPageInfo downloads a page and extracts its signals. Any failure
// returns a zero pageInfo with accessible=false.
func (a *Analyzer) fetchPageInfo(ctx context.Context, rawURL string) pageInfo {
	if valid, _ := validation.ValidateURLForFetch(rawURL); !valid {
		return pageInfo{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return pageInfo{}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return pageInfo{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return pageInfo{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return pageInfo{}
	}

	return extractPageInfo(string(body))
}

// extractPageInfo parses HTML and searches the raw text for known tracker
// substrings.
func extractPageInfo(html string) pageInfo {
	info := pageInfo{
		accessible:       true,
		hasAnalytics:     strings.Contains(html, "google-analytics") || strings.Contains(html, "gtag"),
		hasFacebookPixel: strings.Contains(html, "fbq(") || strings.Contains(html, "facebook.com/tr"),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return info
	}

	info.title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		info.description = strings.TrimSpace(desc)
	}
	if kw, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		info.keywords = strings.TrimSpace(kw)
	}
	return info
}

// estimateTraffic picks the traffic number and its source: the publisher's
// reported figure wins, then the configured estimator, then the randomized
// fallback.
func (a *Analyzer) estimateTraffic(ctx context.Context, req *models.PublisherRequest, domain string) (int64, string) {
	if req.MonthlyTraffic != nil && *req.MonthlyTraffic > 0 {
		return *req.MonthlyTraffic, models.TrafficSourceReported
	}

	if a.estimator != nil {
		if visits, source, err := a.estimator.Estimate(ctx, domain); err == nil {
			return visits, source
		}
	}
	return fallbackTraffic(), models.TrafficSourceEstimated
}

// TrustScore computes the 0-100 heuristic score. The fixed point-weights are
// the behavioral contract dashboards depend on: analytics +20, title +15,
// description +15, traffic>1000 +25, traffic>10000 +25, capped at 100.
func TrustScore(hasAnalytics bool, title, description string, monthlyTraffic int64) int {
	score := 0
	if hasAnalytics {
		score += 20
	}
	if title != "" {
		score += 15
	}
	if description != "" {
		score += 15
	}
	if monthlyTraffic > 1000 {
		score += 25
	}
	if monthlyTraffic > 10000 {
		score += 25
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Categorize infers a site category by keyword-matching title+description
// against a fixed vocabulary. This is a heuristic classifier, not a model.
func Categorize(title, description string) string {
	content := strings.ToLower(title + " " + description)

	switch {
	case strings.Contains(content, "tech") || strings.Contains(content, "software"):
		return "Technology"
	case strings.Contains(content, "fashion") || strings.Contains(content, "style"):
		return "Fashion"
	case strings.Contains(content, "food") || strings.Contains(content, "recipe"):
		return "Food"
	case strings.Contains(content, "travel") || strings.Contains(content, "tourism"):
		return "Travel"
	case strings.Contains(content, "health") || strings.Contains(content, "fitness"):
		return "Health"
	case strings.Contains(content, "finance") || strings.Contains(content, "money"):
		return "Finance"
	case strings.Contains(content, "education") || strings.Contains(content, "learning"):
		return "Education"
	}
	return "General"
}

func fallbackTraffic() int64 {
	return rand.Int64N(100000) + 1000
}

func authorityOrEstimate(reported *int, spread, base int64) int {
	if reported != nil && *reported > 0 {
		return *reported
	}
	return int(rand.Int64N(spread) + base)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
