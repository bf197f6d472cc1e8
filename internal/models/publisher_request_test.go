package models

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestPriceRange(t *testing.T) {
	tests := []struct {
		name     string
		request  PublisherRequest
		expected string
	}{
		{
			name:     "no gray niche price collapses to standard",
			request:  PublisherRequest{StandardPostPrice: 50},
			expected: "$50",
		},
		{
			name:     "gray niche price equal to standard collapses",
			request:  PublisherRequest{StandardPostPrice: 50, GrayNichePrice: floatPtr(50)},
			expected: "$50",
		},
		{
			name:     "distinct gray niche price renders a range",
			request:  PublisherRequest{StandardPostPrice: 50, GrayNichePrice: floatPtr(120)},
			expected: "$50 - $120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.request.PriceRange(); got != tt.expected {
				t.Errorf("PriceRange() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsDeletable(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusPending, true},
		{StatusRejected, true},
		{StatusApproved, false},
		{StatusUnderReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r := PublisherRequest{Status: tt.status}
			if got := r.IsDeletable(); got != tt.expected {
				t.Errorf("IsDeletable() with status %q = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestIsReviewable(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusPending, true},
		{StatusUnderReview, true},
		{StatusApproved, false},
		{StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r := PublisherRequest{Status: tt.status}
			if got := r.IsReviewable(); got != tt.expected {
				t.Errorf("IsReviewable() with status %q = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestMaxPrice(t *testing.T) {
	r := PublisherRequest{StandardPostPrice: 75, GrayNichePrice: floatPtr(150)}
	if got := r.MaxPrice(); got != 150 {
		t.Errorf("MaxPrice() = %v, want 150", got)
	}

	r = PublisherRequest{StandardPostPrice: 75}
	if got := r.MaxPrice(); got != 75 {
		t.Errorf("MaxPrice() without gray price = %v, want 75", got)
	}
}
