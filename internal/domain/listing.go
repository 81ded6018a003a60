package domain

// Listing is the canonical record for one government job posting.
//
// It is NOT tied to any particular API response shape. All server
// payload variants are coalesced into this structure by Normalize.
//
// A Listing is uniquely identified by its ID within a listing set.
// Core fields never change after creation; only the engagement
// counters move, and only through the documented board operations.
type Listing struct {
	// ID is the canonical unique identifier. Server-sourced listings
	// carry the server ID (coerced to string), admin-created listings
	// a client-generated one.
	ID string `json:"id"`

	Title      string `json:"title"`
	Department string `json:"department"`
	Location   string `json:"location"`

	// Vacancies is the advertised number of open posts. Never negative.
	Vacancies int `json:"vacancies"`

	// LastDate is the application deadline, PostedDate the publication
	// date. Both are bare dates in YYYY-MM-DD form.
	LastDate   string `json:"lastDate"`
	PostedDate string `json:"postedDate"`

	Qualification string   `json:"qualification"`
	Category      Category `json:"category"`
	Description   string   `json:"description"`

	// Engagement counters. Never negative.
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`

	// ApplyLink is the external application URL, empty when none.
	ApplyLink string `json:"applyLink,omitempty"`

	// Notification is the official notification document, nil when none.
	Notification *Notification `json:"notification,omitempty"`

	// Bookmarked is a per-user server annotation on fetched listings.
	// It seeds the local bookmark set and is not authoritative afterwards.
	Bookmarked bool `json:"bookmarked,omitempty"`
}

// Notification references an official notification document attached
// to a listing.
type Notification struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// EngagementScore is the trending metric: likes + comments + shares.
func (l Listing) EngagementScore() int {
	return l.Likes + l.Comments + l.Shares
}
