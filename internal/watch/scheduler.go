package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/services"
	"jobdash/internal/structures"
	"jobdash/internal/transport"
	"jobdash/internal/watch/interfaces"
)

var ErrNoSession = errors.New("no valid session, sign in first")

// SessionKeeper revalidates the persisted session and ends it once the
// server stops accepting it.
type SessionKeeper interface {
	Restore(ctx context.Context) (models.User, bool)
	Authenticated() bool
	SignOut()
}

type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	session   SessionKeeper
	dashboard services.DashboardInterface
	jobs      services.JobCollectionInterface
	cron      *cron.Cron
	opsMu     sync.Mutex
}

func (s *Scheduler) Init() error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.config.Watch.Schedule, func() {
		if err := s.Refresh(context.Background()); err != nil && !errors.Is(err, ErrNoSession) {
			s.logger.Warnf(providers.TypeApp, "Scheduled refresh failed: %s", err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch schedule %q: %w", s.config.Watch.Schedule, err)
	}
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Refreshing on schedule %q", s.config.Watch.Schedule)
	return nil
}

// Stop waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) Restore(ctx context.Context) error {
	user, ok := s.session.Restore(ctx)
	if !ok {
		return ErrNoSession
	}
	s.logger.Infof(providers.TypeApp, "Watching as %s", user.Email)
	return nil
}

// Refresh re-fetches the dashboard and reloads the job page with the
// parameters of the last applied load. A rejected token ends the session,
// and later refreshes are skipped with ErrNoSession.
func (s *Scheduler) Refresh(ctx context.Context) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if !s.session.Authenticated() {
		s.logger.Debugf(providers.TypeApp, "Signed out, skipping refresh")
		return ErrNoSession
	}

	var errs []error
	snap, err := s.dashboard.Refresh(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("dashboard: %w", err))
	} else {
		s.logger.Infof(providers.TypeApp, "Dashboard: %d matches (%d new), %d bookmarked, %d applied",
			snap.TotalMatches, snap.NewMatches, snap.BookmarkedJobs, snap.AppliedJobs)
	}

	if _, err := s.jobs.Load(ctx, s.jobs.Params()); err != nil {
		errs = append(errs, fmt.Errorf("jobs: %w", err))
	} else if _, err := s.jobs.Hydrate(ctx); err != nil {
		errs = append(errs, fmt.Errorf("matches: %w", err))
	}

	err = errors.Join(errs...)
	if errors.Is(err, transport.ErrUnauthorized) {
		s.logger.Errorf(providers.TypeApp, "Session is no longer accepted, signing out")
		s.session.SignOut()
	}
	return err
}

func NewScheduler(config *structures.Config, logger providers.Logger, session SessionKeeper, dashboard services.DashboardInterface, jobs services.JobCollectionInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:    config,
		logger:    logger,
		session:   session,
		dashboard: dashboard,
		jobs:      jobs,
	}
}
