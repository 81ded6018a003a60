package remote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sarkaridakiya/dakiya/internal/domain"
	"github.com/sarkaridakiya/dakiya/internal/logger"
)

// Listings fetches and normalizes the primary listing set.
func (c *Client) Listings(ctx context.Context) ([]domain.Listing, error) {
	return c.fetchListings(ctx, "/jobs/")
}

// Trending fetches and normalizes the server-ranked trending set.
// The server ordering is preserved as-is; when this call succeeds the
// board shows it instead of the locally sorted view.
func (c *Client) Trending(ctx context.Context) ([]domain.Listing, error) {
	return c.fetchListings(ctx, "/trending/")
}

func (c *Client) fetchListings(ctx context.Context, path string) ([]domain.Listing, error) {
	_, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	records, err := domain.ExtractRecords(body)
	if err != nil {
		return nil, err
	}

	listings := domain.NormalizeAll(records)
	c.logger.Debug("fetched listings",
		logger.String("path", path),
		logger.Int("count", len(listings)))
	return listings, nil
}

type bookmarkResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Bookmarked bool   `json:"bookmarked"`
}

// ToggleBookmark flips the server-side bookmark for one listing and
// returns the resulting server state.
func (c *Client) ToggleBookmark(ctx context.Context, listingID string) (bool, error) {
	_, body, err := c.do(ctx, http.MethodPost, "/jobs/"+listingID+"/bookmark/", nil)
	if err != nil {
		return false, err
	}

	var resp bookmarkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// A 2xx with an unreadable body still means the toggle landed.
		return true, nil
	}
	return resp.Bookmarked, nil
}
