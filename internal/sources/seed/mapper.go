package seed

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sarkaridakiya/dakiya/internal/domain"
)

// Mapper converts seed entries to domain listings and comment threads.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts a seed file to listings plus their pre-seeded comment
// threads, keyed by listing ID. Entries without a title are skipped;
// entries without an ID get a positional one.
func (m *Mapper) Map(file *File, now time.Time) ([]domain.Listing, map[string][]domain.Comment, error) {
	var listings []domain.Listing
	threads := make(map[string][]domain.Comment)
	seq := 0

	for i, entry := range file.Listings {
		if entry.Title == "" {
			continue
		}

		id := entry.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		listing := domain.Listing{
			ID:            id,
			Title:         entry.Title,
			Department:    entry.Department,
			Location:      entry.Location,
			Vacancies:     clampNonNegative(entry.Vacancies),
			LastDate:      entry.LastDate,
			PostedDate:    entry.PostedDate,
			Qualification: entry.Qualification,
			Category:      domain.ParseCategory(entry.Category),
			Description:   entry.Description,
			Likes:         clampNonNegative(entry.Likes),
			Comments:      clampNonNegative(entry.Comments),
			Shares:        clampNonNegative(entry.Shares),
			ApplyLink:     entry.ApplyLink,
		}
		if entry.Notification != nil && entry.Notification.URL != "" {
			listing.Notification = &domain.Notification{
				URL:  entry.Notification.URL,
				Name: entry.Notification.Name,
			}
		}

		for _, ce := range entry.Thread {
			if ce.Content == "" {
				continue
			}
			// Offset the clock per comment so every generated ID is unique.
			comment := domain.NewComment(ce.Author, ce.Content, now.Add(time.Duration(seq)*time.Millisecond))
			comment.Likes = clampNonNegative(ce.Likes)
			seq++
			threads[id] = append(threads[id], comment)
		}

		// The comment counter covers at least the seeded thread.
		if n := len(threads[id]); listing.Comments < n {
			listing.Comments = n
		}

		listings = append(listings, listing)
	}

	if len(listings) == 0 {
		return nil, nil, fmt.Errorf("no valid listings found in seed file")
	}

	return listings, threads, nil
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
