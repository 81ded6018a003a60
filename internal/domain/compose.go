package domain

import (
	"sort"
	"strings"
)

// ViewMode selects which subset of listings the board shows.
type ViewMode string

const (
	ViewAll        ViewMode = "all"
	ViewBookmarked ViewMode = "bookmarked"
	ViewTrending   ViewMode = "trending"
)

// ParseViewMode maps a raw value to a ViewMode, defaulting to ViewAll.
func ParseViewMode(raw string) ViewMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ViewBookmarked):
		return ViewBookmarked
	case string(ViewTrending):
		return ViewTrending
	default:
		return ViewAll
	}
}

// AllJobsFilter is the sentinel category filter that keeps everything.
const AllJobsFilter = "All Jobs"

// Compose derives the visible listing sequence from the full set and
// the current view state. It is pure: the input slice is never mutated
// and a fresh slice is always returned.
//
// Steps, in order:
//  1. category filter (sentinel "All Jobs" keeps all, else exact match)
//  2. text filter (case-insensitive substring on title, department or
//     location; an empty query matches everything)
//  3. view mode (bookmarked keeps members of the bookmarked set;
//     trending sorts by engagement score descending, ties stable)
func Compose(listings []Listing, query, categoryFilter string, mode ViewMode, bookmarked map[string]struct{}) []Listing {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if categoryFilter != AllJobsFilter && string(l.Category) != categoryFilter {
			continue
		}
		if needle != "" && !matchesQuery(l, needle) {
			continue
		}
		if mode == ViewBookmarked {
			if _, ok := bookmarked[l.ID]; !ok {
				continue
			}
		}
		out = append(out, l)
	}

	if mode == ViewTrending {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EngagementScore() > out[j].EngagementScore()
		})
	}

	return out
}

// matchesQuery reports whether needle (already lowercased) is a
// substring of the listing's title, department or location.
func matchesQuery(l Listing, needle string) bool {
	return strings.Contains(strings.ToLower(l.Title), needle) ||
		strings.Contains(strings.ToLower(l.Department), needle) ||
		strings.Contains(strings.ToLower(l.Location), needle)
}
