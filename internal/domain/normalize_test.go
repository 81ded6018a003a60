package domain

import (
	"testing"
)

func TestExtractRecords(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{
			name: "bare array",
			body: `[{"title":"A"},{"title":"B"}]`,
			want: 2,
		},
		{
			name: "results wrapper",
			body: `{"results":[{"title":"A"}]}`,
			want: 1,
		},
		{
			name: "data wrapper",
			body: `{"status":"success","count":1,"data":[{"title":"A"}]}`,
			want: 1,
		},
		{
			name: "jobs wrapper",
			body: `{"jobs":[{"title":"A"},{"title":"B"},{"title":"C"}]}`,
			want: 3,
		},
		{
			name: "unknown wrapper falls back to first array property",
			body: `{"message":"ok","postings":[{"title":"A"}]}`,
			want: 1,
		},
		{
			name: "non-object elements are dropped",
			body: `[{"title":"A"},"junk",42]`,
			want: 1,
		},
		{
			name:    "object without any array",
			body:    `{"message":"ok"}`,
			wantErr: true,
		},
		{
			name:    "scalar payload",
			body:    `"nope"`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			body:    `{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ExtractRecords([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractRecords() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractRecords() error = %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("ExtractRecords() returned %d records, want %d", len(records), tt.want)
			}
		})
	}
}

func TestNormalizeFallbackChains(t *testing.T) {
	raw := map[string]any{
		"job_title":    "X",
		"organization": "Y",
	}

	listing := Normalize(raw)

	if listing.Title != "X" {
		t.Errorf("Title = %q, want %q", listing.Title, "X")
	}
	if listing.Department != "Y" {
		t.Errorf("Department = %q, want %q", listing.Department, "Y")
	}
	if listing.Vacancies != 0 {
		t.Errorf("Vacancies = %d, want 0", listing.Vacancies)
	}
	if listing.Category != CategoryOther {
		t.Errorf("Category = %q, want %q", listing.Category, CategoryOther)
	}
}

func TestNormalizeFullRecord(t *testing.T) {
	raw := map[string]any{
		"id":                float64(42),
		"title":             "Junior Engineer (Civil)",
		"organization":      "Railway Recruitment Board",
		"location":          "All India",
		"vacancies":         float64(2450),
		"last_date":         "2025-01-15",
		"posted_at":         "2024-12-10T08:30:00Z",
		"qualification":     "Diploma in Civil Engineering",
		"category":          "RAILWAY",
		"description":       "Maintenance and construction of railway infrastructure.",
		"likes_count":       float64(1234),
		"comments_count":    float64(45),
		"shares_count":      float64(89),
		"job_link":          "https://rrb.example/apply",
		"notification_url":  "https://rrb.example/notice.pdf",
		"notification_name": "notice.pdf",
		"is_bookmarked":     true,
	}

	listing := Normalize(raw)

	if listing.ID != "42" {
		t.Errorf("ID = %q, want %q (numeric IDs coerce to string)", listing.ID, "42")
	}
	if listing.Category != CategoryRailway {
		t.Errorf("Category = %q, want %q", listing.Category, CategoryRailway)
	}
	if listing.PostedDate != "2024-12-10" {
		t.Errorf("PostedDate = %q, want bare date", listing.PostedDate)
	}
	if listing.Likes != 1234 || listing.Comments != 45 || listing.Shares != 89 {
		t.Errorf("counters = %d/%d/%d, want 1234/45/89",
			listing.Likes, listing.Comments, listing.Shares)
	}
	if listing.ApplyLink != "https://rrb.example/apply" {
		t.Errorf("ApplyLink = %q", listing.ApplyLink)
	}
	if listing.Notification == nil || listing.Notification.Name != "notice.pdf" {
		t.Errorf("Notification = %+v, want notice.pdf", listing.Notification)
	}
	if !listing.Bookmarked {
		t.Error("Bookmarked = false, want true")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	listing := Normalize(map[string]any{})

	if listing.Title != UntitledListing {
		t.Errorf("Title = %q, want %q", listing.Title, UntitledListing)
	}
	if listing.ID != UntitledListing {
		t.Errorf("ID = %q, want title fallback", listing.ID)
	}
	if listing.Category != CategoryOther {
		t.Errorf("Category = %q, want %q", listing.Category, CategoryOther)
	}
	if listing.Vacancies != 0 || listing.Likes != 0 || listing.Comments != 0 || listing.Shares != 0 {
		t.Error("numeric fields should default to 0")
	}
	if listing.Notification != nil {
		t.Error("Notification should be nil when no URL is present")
	}
}

func TestNormalizeClampsNegatives(t *testing.T) {
	listing := Normalize(map[string]any{
		"vacancies":   float64(-5),
		"likes_count": float64(-1),
	})

	if listing.Vacancies != 0 {
		t.Errorf("Vacancies = %d, want 0", listing.Vacancies)
	}
	if listing.Likes != 0 {
		t.Errorf("Likes = %d, want 0", listing.Likes)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{"RAILWAY", CategoryRailway},
		{"Railway", CategoryRailway},
		{"STATE_GOVT", CategoryStateGovt},
		{"State Govt", CategoryStateGovt},
		{"banking", CategoryBanking},
		{"ssc", CategorySSC},
		{"UPSC", CategoryUPSC},
		{"TEACHING", CategoryTeaching},
		{"OTHER", CategoryOther},
		{"", CategoryOther},
		{"garbage", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseCategory(tt.raw); got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
