package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jobdash/internal/controllers"
	"jobdash/internal/providers"
	"jobdash/internal/query"
	"jobdash/internal/services"
	"jobdash/internal/session"
	"jobdash/internal/storage"
	"jobdash/internal/structures"
	"jobdash/internal/watch/interfaces"
)

// App is the assembled client core. Commands drive it one operation at a
// time; Watch keeps it running.
type App struct {
	Config      *structures.Config
	Logger      providers.Logger
	Metrics     providers.MetricsProviderInterface
	Session     *session.Manager
	Jobs        services.JobCollectionInterface
	Details     services.JobDetailsInterface
	Dashboard   services.DashboardInterface
	Matches     services.MatchesInterface
	Preferences services.PreferencesInterface
	Scheduler   interfaces.SchedulerInterface

	router     providers.RouterProviderInterface
	health     *controllers.HealthController
	compressor storage.CompressorInterface
}

func NewApp(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, manager *session.Manager, jobs services.JobCollectionInterface, details services.JobDetailsInterface, dashboard services.DashboardInterface, matches services.MatchesInterface, preferences services.PreferencesInterface, scheduler interfaces.SchedulerInterface, router providers.RouterProviderInterface, health *controllers.HealthController, compressor storage.CompressorInterface) *App {
	return &App{
		Config:      conf,
		Logger:      logger,
		Metrics:     metrics,
		Session:     manager,
		Jobs:        jobs,
		Details:     details,
		Dashboard:   dashboard,
		Matches:     matches,
		Preferences: preferences,
		Scheduler:   scheduler,
		router:      router,
		health:      health,
		compressor:  compressor,
	}
}

// Handler serves the watch-mode endpoints.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.health.Health)
	if a.Config.Metrics.Enabled {
		mux.Handle("/metrics", a.Metrics.Handler())
	}
	for _, route := range a.router.GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}
	return mux
}

// Watch restores the session, loads the first page for params and then
// refreshes on the configured schedule until ctx ends or the process is
// interrupted.
func (a *App) Watch(ctx context.Context, params query.Params) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof(providers.TypeApp, "Starting %s watch", a.Config.AppName)
	if err := a.Scheduler.Restore(ctx); err != nil {
		return err
	}
	// later refreshes reuse the parameters of this load
	if _, err := a.Jobs.Load(ctx, params); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	if _, err := a.Jobs.Hydrate(ctx); err != nil {
		a.Logger.Warnf(providers.TypeApp, "Initial hydrate failed: %s", err)
	}
	if _, err := a.Dashboard.Refresh(ctx); err != nil {
		a.Logger.Warnf(providers.TypeApp, "Initial dashboard refresh failed: %s", err)
	}

	ln, err := net.Listen("tcp", a.Config.Metrics.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.Config.Metrics.Listen, err)
	}
	server := &http.Server{
		Handler:      a.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := a.Scheduler.Init(); err != nil {
		_ = ln.Close()
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		a.Logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	a.Scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	if runErr == nil {
		a.Logger.Infof(providers.TypeApp, "gracefully stopped")
	}
	return runErr
}

func (a *App) Close() {
	if a.compressor != nil {
		a.compressor.Close()
	}
	a.Logger.Close()
}
