package models

import "time"

type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	LocationType string    `json:"location_type"`
	JobType      string    `json:"job_type"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	SalaryMin    *float64  `json:"salary_min,omitempty"`
	SalaryMax    *float64  `json:"salary_max,omitempty"`
	Currency     string    `json:"currency"`
	ExternalURL  string    `json:"external_url"`
	JobBoardName string    `json:"job_board_name"`
	Tags         []string  `json:"tags"`
	PostedDate   time.Time `json:"posted_date"`
	ScrapedAt    time.Time `json:"scraped_at"`

	Bookmarked bool `json:"is_bookmarked"`
	Applied    bool `json:"is_applied"`
}

// JobFlags is the subset of a job payload that may carry server-side flags.
// The list endpoint normally omits them, so pointers distinguish absent from false.
type JobFlags struct {
	ID         int64 `json:"id"`
	Bookmarked *bool `json:"is_bookmarked"`
	Applied    *bool `json:"is_applied"`
}

type JobMatch struct {
	ID                    int64     `json:"id"`
	Job                   Job       `json:"job"`
	JobPreferenceKeywords string    `json:"job_preference_keywords"`
	MatchScore            float64   `json:"match_score"`
	IsViewed              bool      `json:"is_viewed"`
	IsBookmarked          bool      `json:"is_bookmarked"`
	IsApplied             bool      `json:"is_applied"`
	CreatedAt             time.Time `json:"created_at"`
}

type BookmarkResult struct {
	Bookmarked bool   `json:"bookmarked"`
	Message    string `json:"message"`
}

type ApplyResult struct {
	Message string `json:"message"`
}
