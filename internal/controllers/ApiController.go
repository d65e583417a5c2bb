package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/services"
	"jobdash/internal/transport"
)

// ApiController exposes the state kept by watch mode as read-only JSON.
type ApiController struct {
	logger    providers.Logger
	jobs      services.JobCollectionInterface
	details   services.JobDetailsInterface
	dashboard services.DashboardInterface
}

func NewApiController(logger providers.Logger, jobs services.JobCollectionInterface, details services.JobDetailsInterface, dashboard services.DashboardInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		jobs:      jobs,
		details:   details,
		dashboard: dashboard,
	}
}

type dashboardResponse struct {
	Snapshot  models.DashboardSnapshot `json:"snapshot"`
	FetchedAt time.Time                `json:"fetched_at"`
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, code int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Unable to encode response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetDashboard(w http.ResponseWriter, _ *http.Request) {
	snap, at, ok := ac.dashboard.Snapshot()
	if !ok {
		http.Error(w, "Dashboard not fetched yet", http.StatusServiceUnavailable)
		return
	}
	ac.writeJSON(w, http.StatusOK, dashboardResponse{Snapshot: snap, FetchedAt: at})
}

func (ac *ApiController) GetJobs(w http.ResponseWriter, _ *http.Request) {
	ac.writeJSON(w, http.StatusOK, ac.jobs.Jobs())
}

// GetJob serves the full posting with the flags the collection currently shows.
func (ac *ApiController) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	job, err := ac.details.Get(r.Context(), id)
	switch {
	case errors.Is(err, transport.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	case err != nil:
		ac.logger.Warnf(providers.TypeJobs, "Job %d lookup failed: %s", id, err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	if visible, ok := ac.jobs.Job(id); ok {
		job.Bookmarked, job.Applied = visible.Bookmarked, visible.Applied
	}
	ac.writeJSON(w, http.StatusOK, job)
}
