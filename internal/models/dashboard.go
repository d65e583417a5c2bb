package models

type DashboardSnapshot struct {
	TotalMatches   int `json:"total_matches"`
	NewMatches     int `json:"new_matches"`
	BookmarkedJobs int `json:"bookmarked_jobs"`
	AppliedJobs    int `json:"applied_jobs"`
	RecentScrapes  int `json:"recent_scrapes"`
	TotalJobs      int `json:"total_jobs"`
}
