package services

import (
	"context"
	"net/http"
	"sync"
	"time"

	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/transport"
)

type DashboardInterface interface {
	Refresh(ctx context.Context) (models.DashboardSnapshot, error)
	Snapshot() (models.DashboardSnapshot, time.Time, bool)
}

// Dashboard keeps the last fetched counters. Each refresh replaces them
// whole.
type Dashboard struct {
	mu        sync.RWMutex
	snapshot  models.DashboardSnapshot
	fetchedAt time.Time
	ok        bool

	api    transport.Requester
	logger providers.Logger
	now    func() time.Time
}

func NewDashboard(api transport.Requester, logger providers.Logger) *Dashboard {
	return &Dashboard{
		api:    api,
		logger: logger,
		now:    time.Now,
	}
}

func (d *Dashboard) Refresh(ctx context.Context) (models.DashboardSnapshot, error) {
	var snap models.DashboardSnapshot
	if err := d.api.Do(ctx, transport.Request{Method: http.MethodGet, Path: dashboardPath}, &snap); err != nil {
		d.logger.Warnf(providers.TypeJobs, "Dashboard refresh failed: %s", err)
		return models.DashboardSnapshot{}, err
	}

	d.mu.Lock()
	d.snapshot = snap
	d.fetchedAt = d.now()
	d.ok = true
	d.mu.Unlock()
	return snap, nil
}

// Snapshot returns the last successful refresh and when it happened.
func (d *Dashboard) Snapshot() (models.DashboardSnapshot, time.Time, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot, d.fetchedAt, d.ok
}
