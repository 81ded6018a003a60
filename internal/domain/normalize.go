package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UntitledListing is the title substituted when every title key is absent.
const UntitledListing = "Untitled"

// Fallback chains per canonical field. The first key present in the raw
// record wins; the chain order is the priority order.
var (
	idKeys            = []string{"id", "job_id", "pk"}
	titleKeys         = []string{"title", "job_title", "name"}
	departmentKeys    = []string{"organization", "department", "company"}
	locationKeys      = []string{"location", "place"}
	vacancyKeys       = []string{"vacancies", "vacancy_count", "openings"}
	lastDateKeys      = []string{"last_date", "lastDate", "deadline"}
	postedDateKeys    = []string{"posted_at", "posted_date", "postedDate"}
	qualificationKeys = []string{"qualification", "eligibility"}
	categoryKeys      = []string{"category", "job_category"}
	descriptionKeys   = []string{"description", "details"}
	likesKeys         = []string{"likes_count", "likes"}
	commentsKeys      = []string{"comments_count", "comments"}
	sharesKeys        = []string{"shares_count", "shares"}
	applyLinkKeys     = []string{"job_link", "apply_link", "applyLink"}
	notifyURLKeys     = []string{"notification_url", "notificationUrl"}
	notifyNameKeys    = []string{"notification_name", "notificationName"}
	bookmarkedKeys    = []string{"is_bookmarked", "bookmarked"}
)

// Preferred wrapper keys, checked in order before falling back to the
// first array-valued property.
var wrapperKeys = []string{"results", "data", "jobs"}

// ExtractRecords flattens a listings response body into raw records.
// The body may be a bare JSON array or an object wrapping one under
// "results", "data", "jobs", or any other array-valued property.
func ExtractRecords(body []byte) ([]map[string]any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode listings payload: %w", err)
	}

	switch v := payload.(type) {
	case []any:
		return asRecords(v), nil
	case map[string]any:
		for _, key := range wrapperKeys {
			if arr, ok := v[key].([]any); ok {
				return asRecords(arr), nil
			}
		}
		// Unknown wrapper: take the first array-valued property,
		// scanning keys in a stable order.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := v[k].([]any); ok {
				return asRecords(arr), nil
			}
		}
		return nil, fmt.Errorf("no listing array found in response object")
	default:
		return nil, fmt.Errorf("unexpected listings payload type %T", payload)
	}
}

// asRecords keeps the object-shaped elements and drops everything else.
func asRecords(items []any) []map[string]any {
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}

// Normalize maps one raw record to a canonical Listing. Missing string
// fields default to empty (title to "Untitled", category to Other),
// missing numeric fields to 0. The ID falls back to the title when no
// ID key is present so a malformed record still renders.
func Normalize(raw map[string]any) Listing {
	listing := Listing{
		ID:            firstString(raw, idKeys, ""),
		Title:         firstString(raw, titleKeys, UntitledListing),
		Department:    firstString(raw, departmentKeys, ""),
		Location:      firstString(raw, locationKeys, ""),
		Vacancies:     firstInt(raw, vacancyKeys),
		LastDate:      dateOnly(firstString(raw, lastDateKeys, "")),
		PostedDate:    dateOnly(firstString(raw, postedDateKeys, "")),
		Qualification: firstString(raw, qualificationKeys, ""),
		Category:      ParseCategory(firstString(raw, categoryKeys, "")),
		Description:   firstString(raw, descriptionKeys, ""),
		Likes:         firstInt(raw, likesKeys),
		Comments:      firstInt(raw, commentsKeys),
		Shares:        firstInt(raw, sharesKeys),
		ApplyLink:     firstString(raw, applyLinkKeys, ""),
		Bookmarked:    firstBool(raw, bookmarkedKeys),
	}

	if listing.ID == "" {
		listing.ID = listing.Title
	}

	if url := firstString(raw, notifyURLKeys, ""); url != "" {
		listing.Notification = &Notification{
			URL:  url,
			Name: firstString(raw, notifyNameKeys, ""),
		}
	}

	return listing
}

// NormalizeAll maps a flat record sequence to Listings, order preserved.
func NormalizeAll(records []map[string]any) []Listing {
	listings := make([]Listing, 0, len(records))
	for _, rec := range records {
		listings = append(listings, Normalize(rec))
	}
	return listings
}

// firstString returns the first non-empty string value across keys.
// Numeric values (JSON numbers decode as float64) are rendered as
// strings so numeric IDs coalesce cleanly.
func firstString(raw map[string]any, keys []string, def string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return def
}

// firstInt returns the first usable numeric value across keys, clamped
// to zero. String digits are accepted because some backends serialize
// counters as strings.
func firstInt(raw map[string]any, keys []string) int {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case float64:
			if v < 0 {
				return 0
			}
			return int(v)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				if n < 0 {
					return 0
				}
				return n
			}
		}
	}
	return 0
}

func firstBool(raw map[string]any, keys []string) bool {
	for _, key := range keys {
		if v, ok := raw[key].(bool); ok {
			return v
		}
	}
	return false
}

// dateOnly trims a datetime string down to its date part.
// "2024-12-10T08:30:00Z" -> "2024-12-10"
func dateOnly(s string) string {
	if i := strings.IndexAny(s, "T "); i > 0 {
		return s[:i]
	}
	return s
}
