package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sarkaridakiya/dakiya/internal/domain"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/logger"
)

// listingView is one listing with its per-user interaction flags.
type listingView struct {
	domain.Listing
	Liked      bool `json:"liked"`
	Bookmarked bool `json:"bookmarked"`
	Expanded   bool `json:"expanded"`
}

type jobsResponse struct {
	Listings         []listingView `json:"listings"`
	Query            string        `json:"query"`
	Category         string        `json:"category"`
	View             string        `json:"view"`
	Loaded           bool          `json:"loaded"`
	LoadError        string        `json:"load_error,omitempty"`
	TrendingDegraded bool          `json:"trending_degraded,omitempty"`
	RetryCount       uint64        `json:"retry_count"`
}

// ListJobs applies the filter parameters and returns the composed view.
// Every parameter is optional; an absent one keeps its current value.
func ListJobs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Has("query") {
			d.State.SetQuery(q.Get("query"))
		}
		if q.Has("category") {
			d.State.SetCategory(q.Get("category"))
		}
		if q.Has("view") {
			d.State.SetView(domain.ParseViewMode(q.Get("view")))
		}

		visible := d.State.Visible()
		views := make([]listingView, 0, len(visible))
		for _, l := range visible {
			liked, bookmarked, expanded := d.State.Flags(l.ID)
			views = append(views, listingView{
				Listing:    l,
				Liked:      liked,
				Bookmarked: bookmarked,
				Expanded:   expanded,
			})
		}

		query, category, view := d.State.ViewState()
		writeJSON(w, http.StatusOK, jobsResponse{
			Listings:         views,
			Query:            query,
			Category:         category,
			View:             string(view),
			Loaded:           d.State.Loaded(),
			LoadError:        d.State.LoadFailure(),
			TrendingDegraded: view == domain.ViewTrending && d.State.TrendingDegraded(),
			RetryCount:       d.State.RetryCount(),
		})
	}
}

type refreshResponse struct {
	Triggered  bool   `json:"triggered"`
	RetryCount uint64 `json:"retry_count"`
}

// Refresh bumps the retry counter and signals both reloaders. A trigger
// already pending counts as triggered; the pending reload will run.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.State.BumpRetry()

		select {
		case d.ListingsTrigger <- struct{}{}:
			d.Logger.Info("manual listings reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
		default:
			d.Logger.Warn("listings reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
		}

		if d.TrendingTrigger != nil {
			select {
			case d.TrendingTrigger <- struct{}{}:
			default:
			}
		}

		writeJSON(w, http.StatusAccepted, refreshResponse{
			Triggered:  true,
			RetryCount: count,
		})
	}
}

type createJobRequest struct {
	Title         string `json:"title"`
	Department    string `json:"department"`
	Location      string `json:"location"`
	Vacancies     int    `json:"vacancies"`
	LastDate      string `json:"lastDate"`
	PostedDate    string `json:"postedDate"`
	Qualification string `json:"qualification"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	ApplyLink     string `json:"applyLink"`
}

// CreateJob adds an admin-authored listing at the top of the board.
func CreateJob(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}

		listing := domain.Listing{
			ID:            uuid.NewString(),
			Title:         strings.TrimSpace(req.Title),
			Department:    req.Department,
			Location:      req.Location,
			Vacancies:     req.Vacancies,
			LastDate:      req.LastDate,
			PostedDate:    req.PostedDate,
			Qualification: req.Qualification,
			Category:      domain.ParseCategory(req.Category),
			Description:   req.Description,
			ApplyLink:     req.ApplyLink,
		}
		if listing.Vacancies < 0 {
			listing.Vacancies = 0
		}
		if listing.PostedDate == "" {
			listing.PostedDate = d.Now().Format("2006-01-02")
		}

		d.State.AddListing(listing)
		d.Logger.Info("listing created",
			logger.String("id", listing.ID),
			logger.String("title", listing.Title))

		writeJSON(w, http.StatusCreated, listing)
	}
}
