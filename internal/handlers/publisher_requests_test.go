package handlers

import (
	"testing"

	"postmarket/internal/config"
)

func validCreateBody() createRequestBody {
	return createRequestBody{
		PublisherName:     "Jane Blogger",
		Email:             "jane@example.com",
		CompanyName:       "Jane Media",
		Website:           "https://janemedia.example.com",
		Category:          "Technology",
		AudienceSize:      4000,
		StandardPostPrice: 100,
		DofollowAllowed:   true,
	}
}

func TestCreateRequestBody_Validate(t *testing.T) {
	catalog := config.DefaultCatalog()

	tests := []struct {
		name   string
		mutate func(*createRequestBody)
		wantOK bool
	}{
		{"valid", func(b *createRequestBody) {}, true},
		{"missing publisher name", func(b *createRequestBody) { b.PublisherName = "" }, false},
		{"missing website", func(b *createRequestBody) { b.Website = "" }, false},
		{"bad email", func(b *createRequestBody) { b.Email = "not-an-email" }, false},
		{"bad url scheme", func(b *createRequestBody) { b.Website = "ftp://example.com" }, false},
		{"unknown category", func(b *createRequestBody) { b.Category = "Underwater Basket Weaving" }, false},
		{"zero price", func(b *createRequestBody) { b.StandardPostPrice = 0 }, false},
		{"negative price", func(b *createRequestBody) { b.StandardPostPrice = -10 }, false},
		{"zero gray price", func(b *createRequestBody) {
			price := 0.0
			b.GrayNichePrice = &price
		}, false},
		{"valid gray niche", func(b *createRequestBody) {
			b.GrayNiches = []string{"Casino / Gambling"}
			price := 250.0
			b.GrayNichePrice = &price
		}, true},
		{"unknown gray niche", func(b *createRequestBody) { b.GrayNiches = []string{"Totally Legit"} }, false},
		{"negative audience", func(b *createRequestBody) { b.AudienceSize = -1 }, false},
		{"da out of range", func(b *createRequestBody) {
			da := 150
			b.DomainAuthority = &da
		}, false},
		{"da in range", func(b *createRequestBody) {
			da := 55
			b.DomainAuthority = &da
		}, true},
		{"negative traffic", func(b *createRequestBody) {
			traffic := int64(-5)
			b.MonthlyTraffic = &traffic
		}, false},
		{"bad sample url", func(b *createRequestBody) { b.PostSampleURL = "javascript:alert(1)" }, false},
		{"good sample url", func(b *createRequestBody) { b.PostSampleURL = "https://example.com/sample" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validCreateBody()
			tt.mutate(&body)

			msg, ok := body.validate(catalog)
			if ok != tt.wantOK {
				t.Errorf("validate() ok = %v (%q), want %v", ok, msg, tt.wantOK)
			}
			if !ok && msg == "" {
				t.Error("validate() rejected without a message")
			}
		})
	}
}
