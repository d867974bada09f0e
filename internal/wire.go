//go:build wireinject
// +build wireinject

package internal

import (
	"github.com/google/wire"

	"rtsd/internal/controllers"
	"rtsd/internal/countdown"
	"rtsd/internal/providers"
	"rtsd/internal/refresh"
	"rtsd/internal/services"
	"rtsd/internal/sources"
	"rtsd/internal/structures"
)

func InitializeApp(flags *structures.CliFlags) (*App, error) {
	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRouterProvider,
		sources.NewHTTPClient,
		sources.NewDesktopProvider,
		sources.NewNightlyProvider,
		sources.NewTagProvider,
		sources.NewCalendarProvider,
		NewMatcher,
		services.NewStatusService,
		countdown.NewCalculator,
		refresh.NewScheduler,
		controllers.NewStatusController,
		controllers.NewHealthController,
		NewApp,
	)
	return nil, nil
}
