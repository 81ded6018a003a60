package seed

// File is the top-level structure of the listings seed file.
type File struct {
	Listings []ListingEntry `yaml:"listings"`
}

// ListingEntry is one seed listing as written in YAML.
type ListingEntry struct {
	ID            string `yaml:"id,omitempty"`
	Title         string `yaml:"title"`
	Department    string `yaml:"department,omitempty"`
	Location      string `yaml:"location,omitempty"`
	Vacancies     int    `yaml:"vacancies,omitempty"`
	LastDate      string `yaml:"last_date,omitempty"`
	PostedDate    string `yaml:"posted_date,omitempty"`
	Qualification string `yaml:"qualification,omitempty"`
	Category      string `yaml:"category,omitempty"`
	Description   string `yaml:"description,omitempty"`
	Likes         int    `yaml:"likes,omitempty"`
	Comments      int    `yaml:"comments,omitempty"`
	Shares        int    `yaml:"shares,omitempty"`
	ApplyLink     string `yaml:"apply_link,omitempty"`

	Notification *NotificationEntry `yaml:"notification,omitempty"`

	// Thread pre-populates the comment thread for this listing.
	Thread []CommentEntry `yaml:"thread,omitempty"`
}

// NotificationEntry is the official notification document reference.
type NotificationEntry struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// CommentEntry is one seeded comment.
type CommentEntry struct {
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
	Likes   int    `yaml:"likes,omitempty"`
}
