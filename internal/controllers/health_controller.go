package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"jobdash/internal/services"
)

// SessionState reports whether a credential pair is live.
type SessionState interface {
	Authenticated() bool
}

type HealthController struct {
	session   SessionState
	jobs      services.JobCollectionInterface
	dashboard services.DashboardInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Authenticated bool    `json:"authenticated"`
	Jobs          int     `json:"jobs"`
	LastRefresh   string  `json:"last_refresh,omitempty"`
}

// Health answers 503 once the session is gone, since watch mode can no
// longer refresh anything.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Authenticated: hc.session.Authenticated(),
		Jobs:          hc.jobs.Len(),
	}
	if _, at, ok := hc.dashboard.Snapshot(); ok {
		resp.LastRefresh = at.UTC().Format(time.RFC3339)
	}

	code := http.StatusOK
	if !resp.Authenticated {
		resp.Status = "signed_out"
		code = http.StatusServiceUnavailable
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(session SessionState, jobs services.JobCollectionInterface, dashboard services.DashboardInterface) *HealthController {
	return &HealthController{
		session:   session,
		jobs:      jobs,
		dashboard: dashboard,
		startTime: time.Now(),
	}
}
