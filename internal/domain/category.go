package domain

import "strings"

// Category is the fixed job category set. The zero-value fallback for
// anything unrecognized is CategoryOther.
type Category string

const (
	CategoryRailway   Category = "Railway"
	CategoryBanking   Category = "Banking"
	CategorySSC       Category = "SSC"
	CategoryUPSC      Category = "UPSC"
	CategoryStateGovt Category = "State Govt"
	CategoryTeaching  Category = "Teaching"
	CategoryOther     Category = "Other"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryRailway,
		CategoryBanking,
		CategorySSC,
		CategoryUPSC,
		CategoryStateGovt,
		CategoryTeaching,
		CategoryOther,
	}
}

// ParseCategory maps a raw category value to its canonical form.
// Both the server enum spelling ("STATE_GOVT") and the display
// spelling ("State Govt") are accepted. Unknown values map to Other.
func ParseCategory(raw string) Category {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "_", " ")

	for _, c := range Categories() {
		if normalized == strings.ToLower(string(c)) {
			return c
		}
	}
	return CategoryOther
}
