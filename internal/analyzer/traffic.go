package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"postmarket/internal/models"
)

// TrafficEstimator produces a monthly-visits estimate for a domain. It is an
// interface so a real provider can be substituted without touching the
// workflow.
type TrafficEstimator interface {
	Estimate(ctx context.Context, domain string) (visits int64, source string, err error)
}

// RandomEstimator synthesizes a plausible traffic number. It is a
// placeholder, not an estimation algorithm.
type RandomEstimator struct{}

func (RandomEstimator) Estimate(ctx context.Context, domain string) (int64, string, error) {
	return rand.Int64N(100000) + 1000, models.TrafficSourceEstimated, nil
}

const similarWebBaseURL = "https://api.similarweb.com/v1/website"

// SimilarWebEstimator queries the SimilarWeb traffic API.
type SimilarWebEstimator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewSimilarWebEstimator creates an estimator backed by the SimilarWeb API.
func NewSimilarWebEstimator(apiKey string) *SimilarWebEstimator {
	return &SimilarWebEstimator{
		apiKey:  apiKey,
		baseURL: similarWebBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type similarWebResponse struct {
	Visits []struct {
		Date   string  `json:"date"`
		Visits float64 `json:"visits"`
	} `json:"visits"`
}

func (e *SimilarWebEstimator) Estimate(ctx context.Context, domain string) (int64, string, error) {
	url := fmt.Sprintf("%s/%s/total-traffic-and-engagement/visits?granularity=monthly", e.baseURL, domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("API-Key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("similarweb: unexpected status %d", resp.StatusCode)
	}

	var body similarWebResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, "", err
	}
	if len(body.Visits) == 0 {
		return 0, "", fmt.Errorf("similarweb: no visit data for %s", domain)
	}

	return int64(body.Visits[len(body.Visits)-1].Visits), models.TrafficSourceSimilarWeb, nil
}

// NewEstimator returns the SimilarWeb estimator when an API key is
// configured, the randomized fallback otherwise.
func NewEstimator(similarWebAPIKey string) TrafficEstimator {
	if similarWebAPIKey != "" {
		return NewSimilarWebEstimator(similarWebAPIKey)
	}
	return RandomEstimator{}
}
