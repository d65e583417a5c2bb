//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"jobdash/internal"
	"jobdash/internal/controllers"
	"jobdash/internal/providers"
	"jobdash/internal/services"
	"jobdash/internal/session"
	"jobdash/internal/storage"
	"jobdash/internal/structures"
	"jobdash/internal/transport"
	"jobdash/internal/watch"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewFileStorage,
		session.NewStore,
		wire.Bind(new(transport.CredentialSource), new(*session.Store)),
		transport.NewClient,
		wire.Bind(new(transport.Requester), new(*transport.Client)),
		session.NewManager,
		wire.Bind(new(watch.SessionKeeper), new(*session.Manager)),
		wire.Bind(new(controllers.SessionState), new(*session.Manager)),

		services.NewJobCollection,
		wire.Bind(new(services.JobCollectionInterface), new(*services.JobCollection)),
		services.NewJobDetails,
		wire.Bind(new(services.JobDetailsInterface), new(*services.JobDetails)),
		services.NewDashboard,
		wire.Bind(new(services.DashboardInterface), new(*services.Dashboard)),
		services.NewMatches,
		wire.Bind(new(services.MatchesInterface), new(*services.Matches)),
		services.NewPreferences,
		wire.Bind(new(services.PreferencesInterface), new(*services.Preferences)),

		watch.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
