package repository

import "testing"

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{
			name:        "Defaults for zero values",
			page:        0,
			perPage:     0,
			wantPage:    1,
			wantPerPage: 10,
		},
		{
			name:        "Negative values are clamped",
			page:        -3,
			perPage:     -1,
			wantPage:    1,
			wantPerPage: 10,
		},
		{
			name:        "Oversized per page is capped",
			page:        2,
			perPage:     500,
			wantPage:    2,
			wantPerPage: 100,
		},
		{
			name:        "Valid values pass through",
			page:        3,
			perPage:     25,
			wantPage:    3,
			wantPerPage: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := normalizePage(tt.page, tt.perPage)
			if page != tt.wantPage || perPage != tt.wantPerPage {
				t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.perPage, page, perPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		perPage  int
		expected int
	}{
		{
			name:     "No items means no pages",
			total:    0,
			perPage:  10,
			expected: 0,
		},
		{
			name:     "Exact multiple",
			total:    30,
			perPage:  10,
			expected: 3,
		},
		{
			name:     "Partial last page rounds up",
			total:    31,
			perPage:  10,
			expected: 4,
		},
		{
			name:     "Fewer items than one page",
			total:    3,
			perPage:  10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageCount(tt.total, tt.perPage); got != tt.expected {
				t.Errorf("pageCount(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.expected)
			}
		})
	}
}
